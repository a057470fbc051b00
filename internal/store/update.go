package store

import (
	"fmt"
	"strings"
	"time"
)

// UpdateSet collects column assignments for a partial update, preserving
// insertion order. Column names are always literals supplied by repository
// code, never request input, so the composed fragment cannot be injected
// through.
//
// A field counts as provided only when its setter receives a non-nil
// pointer; SetString additionally skips values that are blank after
// trimming, mirroring the form semantics where an empty input means
// "leave unchanged".
type UpdateSet struct {
	cols []string
	args []interface{}
}

// Set unconditionally appends an assignment.
func (u *UpdateSet) Set(col string, v interface{}) {
	u.cols = append(u.cols, col)
	u.args = append(u.args, v)
}

// SetString appends an assignment when s is non-nil and non-blank after
// trimming. The trimmed value is what gets bound.
func (u *UpdateSet) SetString(col string, s *string) {
	if s == nil {
		return
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return
	}
	u.Set(col, trimmed)
}

// SetInt32 appends an assignment when v is non-nil. Zero is a real value.
func (u *UpdateSet) SetInt32(col string, v *int32) {
	if v != nil {
		u.Set(col, *v)
	}
}

// SetInt64 appends an assignment when v is non-nil.
func (u *UpdateSet) SetInt64(col string, v *int64) {
	if v != nil {
		u.Set(col, *v)
	}
}

// SetFloat64 appends an assignment when v is non-nil.
func (u *UpdateSet) SetFloat64(col string, v *float64) {
	if v != nil {
		u.Set(col, *v)
	}
}

// SetBool appends an assignment when v is non-nil. False is a real value.
func (u *UpdateSet) SetBool(col string, v *bool) {
	if v != nil {
		u.Set(col, *v)
	}
}

// SetDate appends an assignment when v is non-nil.
func (u *UpdateSet) SetDate(col string, v *time.Time) {
	if v != nil {
		u.Set(col, *v)
	}
}

// Empty reports whether no field has been provided. Repositories treat an
// empty set as a successful no-op and never issue a statement for it.
func (u *UpdateSet) Empty() bool {
	return len(u.cols) == 0
}

// Clause renders the SET fragment with placeholders numbered from start,
// and returns the bound values in fragment order. The identifying key is
// outside the composer's scope; the repository appends it after these args.
func (u *UpdateSet) Clause(start int) (string, []interface{}) {
	parts := make([]string, len(u.cols))
	for i, col := range u.cols {
		parts[i] = fmt.Sprintf("%s = $%d", col, start+i)
	}
	return strings.Join(parts, ", "), u.args
}
