package domain

import "time"

// Category groups clients by segment (e.g., bars, retail).
// categoryName is unique within the active dataset.
type Category struct {
	CategoryID   int64  `json:"categoryID"`
	CategoryName string `json:"categoryName"`
}

// Client is a customer of the distributor. CategoryID references Category.
type Client struct {
	ClientID    int64  `json:"clientID"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	CategoryID  int64  `json:"categoryID"`
}

// Product is a beer the distributor stocks.
type Product struct {
	ProductID          int64   `json:"productID"`
	ProductName        string  `json:"productName"`
	BeerType           string  `json:"beerType"`
	BeerPrice          float64 `json:"beerPrice"`
	ProductInStock     int32   `json:"productInStock"`
	CurrentlyAvailable bool    `json:"currentlyAvailable"`
}

// SalesOrder is one order placed by a client. OrderStatus values are fixed
// by the schema (pending, shipped, cancelled).
type SalesOrder struct {
	OrderID     int64     `json:"orderID"`
	OrderDate   time.Time `json:"orderDate"`
	ClientID    int64     `json:"clientID"`
	TotalAmount float64   `json:"totalAmount"`
	OrderStatus string    `json:"orderStatus"`
}

// OrderItem is one product line on a sales order. The store enforces that
// (orderID, productID) is unique per order.
type OrderItem struct {
	OrderItemID int64   `json:"orderItemID"`
	OrderID     int64   `json:"orderID"`
	ProductID   int64   `json:"productID"`
	OrderQty    int32   `json:"orderQty"`
	UnitPrice   float64 `json:"unitPrice"`
}
