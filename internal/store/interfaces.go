package store

import (
	"context"
	"time"

	"brewlogic-service/internal/domain"
)

// NewCategory holds the fields for a category insert.
type NewCategory struct {
	CategoryName string
}

// CategoryUpdate holds the sparse fields for a category update. A nil field
// means "leave unchanged".
type CategoryUpdate struct {
	CategoryName *string
}

// CategoryStorer defines the database operations for categories.
type CategoryStorer interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	InsertCategory(ctx context.Context, c NewCategory) error
	UpdateCategory(ctx context.Context, id int64, upd CategoryUpdate) error
	DeleteCategory(ctx context.Context, id int64) error
}

// NewClient holds the fields for a client insert. CategoryID is required
// on insert; the insert procedure enforces the foreign key.
type NewClient struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     string
	CategoryID  int64
}

// ClientUpdate holds the sparse fields for a client update.
type ClientUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Address     *string
	CategoryID  *int64
}

// ClientStorer defines the database operations for clients.
type ClientStorer interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	InsertClient(ctx context.Context, c NewClient) error
	UpdateClient(ctx context.Context, id int64, upd ClientUpdate) error
	DeleteClient(ctx context.Context, id int64) error
}

// NewProduct holds the fields for a product insert.
type NewProduct struct {
	ProductName        string
	BeerType           string
	BeerPrice          float64
	ProductInStock     int32
	CurrentlyAvailable bool
}

// ProductUpdate holds the sparse fields for a product update. Pointer
// fields distinguish "not provided" from zero or false.
type ProductUpdate struct {
	ProductName        *string
	BeerType           *string
	BeerPrice          *float64
	ProductInStock     *int32
	CurrentlyAvailable *bool
}

// ProductStorer defines the database operations for products.
type ProductStorer interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	InsertProduct(ctx context.Context, p NewProduct) error
	UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) error
	DeleteProduct(ctx context.Context, id int64) error
}

// NewSalesOrder holds the fields for a sales order insert.
type NewSalesOrder struct {
	OrderDate   time.Time
	ClientID    int64
	TotalAmount float64
	OrderStatus string
}

// SalesOrderUpdate holds the sparse fields for a sales order update.
type SalesOrderUpdate struct {
	OrderDate   *time.Time
	ClientID    *int64
	TotalAmount *float64
	OrderStatus *string
}

// SalesOrderStorer defines the database operations for sales orders.
type SalesOrderStorer interface {
	ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error)
	InsertSalesOrder(ctx context.Context, o NewSalesOrder) error
	UpdateSalesOrder(ctx context.Context, id int64, upd SalesOrderUpdate) error
	DeleteSalesOrder(ctx context.Context, id int64) error
}

// NewOrderItem holds the fields for an order item insert. The insert
// procedure rejects a duplicate (orderID, productID) pair.
type NewOrderItem struct {
	OrderID   int64
	ProductID int64
	OrderQty  int32
	UnitPrice float64
}

// OrderItemUpdate holds the sparse fields for an order item update. Only
// quantity and price are mutable; re-keying a line to another order or
// product is not supported.
type OrderItemUpdate struct {
	OrderQty  *int32
	UnitPrice *float64
}

// OrderItemStorer defines the database operations for order items.
type OrderItemStorer interface {
	ListOrderItems(ctx context.Context) ([]domain.OrderItem, error)
	InsertOrderItem(ctx context.Context, i NewOrderItem) error
	UpdateOrderItem(ctx context.Context, id int64, upd OrderItemUpdate) error
	DeleteOrderItem(ctx context.Context, id int64) error
}

// Resetter recreates the entire dataset to the seed state. This is the only
// operation that bypasses the per-entity repositories.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Storer aggregates every repository the orchestrator needs.
type Storer interface {
	CategoryStorer
	ClientStorer
	ProductStorer
	SalesOrderStorer
	OrderItemStorer
	Resetter
}
