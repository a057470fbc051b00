package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrConstraint is returned when the store rejects an operation due to an
// integrity constraint: a duplicate unique key, a missing foreign key, or a
// delete of a row that other rows still reference. The stored procedures
// raise these as ordinary SQLSTATE class-23 errors.
var ErrConstraint = errors.New("store: constraint violation")

// classify wraps a driver error, mapping every integrity-constraint
// violation (SQLSTATE class 23) onto ErrConstraint so callers can dispatch
// with errors.Is. Everything else surfaces as a generic store failure.
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("store: %s: %w", op, ErrConstraint)
	}
	return fmt.Errorf("store: %s: %w", op, err)
}
