package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"brewlogic-service/internal/domain"
)

// PostgresStore implements every entity Storer against PostgreSQL.
//
// Inserts, deletes, and the global reset go through stored procedures so
// that uniqueness and foreign-key checks run at the store; partial updates
// are composed in-app with UpdateSet against a fixed column whitelist per
// entity. The schema and procedures are assumed to pre-exist.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// call invokes a stored procedure with the given args, classifying
// constraint rejections. Affected-row count is deliberately ignored:
// deleting a row that does not exist violates nothing and is success.
func (s *PostgresStore) call(ctx context.Context, op, stmt string, args ...interface{}) error {
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return classify(op, err)
	}
	return nil
}

// execUpdate runs a composer-built partial update. An empty UpdateSet is a
// successful no-op and never reaches the store.
func (s *PostgresStore) execUpdate(ctx context.Context, op, table, idCol string, id int64, u *UpdateSet) error {
	if u.Empty() {
		return nil
	}
	clause, args := u.Clause(1)
	stmt := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`, table, clause, idCol, len(args)+1)
	if _, err := s.db.ExecContext(ctx, stmt, append(args, id)...); err != nil {
		return classify(op, err)
	}
	return nil
}

// --- CategoryStorer ---

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT "categoryID", "categoryName" FROM "Categories"`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("ListCategories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.CategoryID, &c.CategoryName); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) InsertCategory(ctx context.Context, c NewCategory) error {
	return s.call(ctx, "InsertCategory", `CALL sp_insert_category($1)`, c.CategoryName)
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id int64, upd CategoryUpdate) error {
	var u UpdateSet
	u.SetString(`"categoryName"`, upd.CategoryName)
	return s.execUpdate(ctx, "UpdateCategory", `"Categories"`, `"categoryID"`, id, &u)
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id int64) error {
	return s.call(ctx, "DeleteCategory", `CALL sp_delete_category($1)`, id)
}

// --- ClientStorer ---

func (s *PostgresStore) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT "clientID", "firstName", "lastName", "email", "phoneNumber", "address", "categoryID" FROM "Clients"`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("ListClients", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ClientID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.Address, &c.CategoryID); err != nil {
			return nil, fmt.Errorf("store: ListClients failed to scan row: %w", err)
		}
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListClients iteration error: %w", err)
	}
	return clients, nil
}

func (s *PostgresStore) InsertClient(ctx context.Context, c NewClient) error {
	return s.call(ctx, "InsertClient", `CALL sp_insert_client($1, $2, $3, $4, $5, $6)`,
		c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.Address, c.CategoryID)
}

func (s *PostgresStore) UpdateClient(ctx context.Context, id int64, upd ClientUpdate) error {
	var u UpdateSet
	u.SetString(`"firstName"`, upd.FirstName)
	u.SetString(`"lastName"`, upd.LastName)
	u.SetString(`"email"`, upd.Email)
	u.SetString(`"phoneNumber"`, upd.PhoneNumber)
	u.SetString(`"address"`, upd.Address)
	u.SetInt64(`"categoryID"`, upd.CategoryID)
	return s.execUpdate(ctx, "UpdateClient", `"Clients"`, `"clientID"`, id, &u)
}

func (s *PostgresStore) DeleteClient(ctx context.Context, id int64) error {
	return s.call(ctx, "DeleteClient", `CALL sp_delete_client($1)`, id)
}

// --- ProductStorer ---

func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT "productID", "productName", "beerType", "beerPrice", "productInStock", "currentlyAvailable" FROM "Products"`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("ListProducts", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.BeerType, &p.BeerPrice, &p.ProductInStock, &p.CurrentlyAvailable); err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) InsertProduct(ctx context.Context, p NewProduct) error {
	return s.call(ctx, "InsertProduct", `CALL sp_insert_product($1, $2, $3, $4, $5)`,
		p.ProductName, p.BeerType, p.BeerPrice, p.ProductInStock, p.CurrentlyAvailable)
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) error {
	var u UpdateSet
	u.SetString(`"productName"`, upd.ProductName)
	u.SetString(`"beerType"`, upd.BeerType)
	u.SetFloat64(`"beerPrice"`, upd.BeerPrice)
	u.SetInt32(`"productInStock"`, upd.ProductInStock)
	u.SetBool(`"currentlyAvailable"`, upd.CurrentlyAvailable)
	return s.execUpdate(ctx, "UpdateProduct", `"Products"`, `"productID"`, id, &u)
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	return s.call(ctx, "DeleteProduct", `CALL sp_delete_product($1)`, id)
}

// --- SalesOrderStorer ---

func (s *PostgresStore) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	query := `SELECT "orderID", "orderDate", "clientID", "totalAmount", "orderStatus" FROM "SalesOrders"`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("ListSalesOrders", err)
	}
	defer rows.Close()

	var orders []domain.SalesOrder
	for rows.Next() {
		var o domain.SalesOrder
		if err := rows.Scan(&o.OrderID, &o.OrderDate, &o.ClientID, &o.TotalAmount, &o.OrderStatus); err != nil {
			return nil, fmt.Errorf("store: ListSalesOrders failed to scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListSalesOrders iteration error: %w", err)
	}
	return orders, nil
}

func (s *PostgresStore) InsertSalesOrder(ctx context.Context, o NewSalesOrder) error {
	return s.call(ctx, "InsertSalesOrder", `CALL sp_insert_salesorder($1, $2, $3, $4)`,
		o.OrderDate, o.ClientID, o.TotalAmount, o.OrderStatus)
}

func (s *PostgresStore) UpdateSalesOrder(ctx context.Context, id int64, upd SalesOrderUpdate) error {
	var u UpdateSet
	u.SetDate(`"orderDate"`, upd.OrderDate)
	u.SetInt64(`"clientID"`, upd.ClientID)
	u.SetFloat64(`"totalAmount"`, upd.TotalAmount)
	u.SetString(`"orderStatus"`, upd.OrderStatus)
	return s.execUpdate(ctx, "UpdateSalesOrder", `"SalesOrders"`, `"orderID"`, id, &u)
}

func (s *PostgresStore) DeleteSalesOrder(ctx context.Context, id int64) error {
	return s.call(ctx, "DeleteSalesOrder", `CALL sp_delete_salesorder($1)`, id)
}

// --- OrderItemStorer ---

func (s *PostgresStore) ListOrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	query := `SELECT "orderItemID", "orderID", "productID", "orderQty", "unitPrice" FROM "OrderItems"`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("ListOrderItems", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var i domain.OrderItem
		if err := rows.Scan(&i.OrderItemID, &i.OrderID, &i.ProductID, &i.OrderQty, &i.UnitPrice); err != nil {
			return nil, fmt.Errorf("store: ListOrderItems failed to scan row: %w", err)
		}
		items = append(items, i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListOrderItems iteration error: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) InsertOrderItem(ctx context.Context, i NewOrderItem) error {
	return s.call(ctx, "InsertOrderItem", `CALL sp_insert_orderitem($1, $2, $3, $4)`,
		i.OrderID, i.ProductID, i.OrderQty, i.UnitPrice)
}

func (s *PostgresStore) UpdateOrderItem(ctx context.Context, id int64, upd OrderItemUpdate) error {
	var u UpdateSet
	u.SetInt32(`"orderQty"`, upd.OrderQty)
	u.SetFloat64(`"unitPrice"`, upd.UnitPrice)
	return s.execUpdate(ctx, "UpdateOrderItem", `"OrderItems"`, `"orderItemID"`, id, &u)
}

func (s *PostgresStore) DeleteOrderItem(ctx context.Context, id int64) error {
	return s.call(ctx, "DeleteOrderItem", `CALL sp_delete_orderitem($1)`, id)
}

// --- Resetter ---

// Reset reseeds the entire dataset. The procedure drops and recreates every
// row, so a reset followed by any list returns the seed data.
func (s *PostgresStore) Reset(ctx context.Context) error {
	return s.call(ctx, "Reset", `CALL sp_brewlogic_reset()`)
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		if err := s.db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
	}
	return nil
}
