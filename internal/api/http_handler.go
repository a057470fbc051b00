package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"brewlogic-service/internal/store"
)

// dateLayout is the wire format for order dates (HTML date inputs).
const dateLayout = "2006-01-02"

// Renderer produces a page for a named view. The orchestrator never touches
// templates directly; rendering is a collaborator behind this interface.
type Renderer interface {
	Render(w io.Writer, view string, data interface{}) error
}

// HTTPHandler orchestrates every inbound request: validate the input,
// invoke the right repository, translate the outcome into a redirect or an
// error response.
type HTTPHandler struct {
	store    store.Storer
	renderer Renderer
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(s store.Storer, r Renderer) *HTTPHandler {
	return &HTTPHandler{
		store:    s,
		renderer: r,
		validate: validator.New(),
	}
}

// --- Helpers ---

func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintln(w, message)
}

// respondStoreError maps a repository failure onto a response. Constraint
// violations get a descriptive client error; everything else is logged with
// full detail and surfaced only as a generic failure.
func respondStoreError(w http.ResponseWriter, op string, err error, constraintMsg string) {
	log.Printf("ERROR: %s store operation failed: %v", op, err)
	if errors.Is(err, store.ErrConstraint) {
		respondError(w, http.StatusConflict, constraintMsg)
		return
	}
	respondError(w, http.StatusInternalServerError, op+" failed.")
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *HTTPHandler) renderPage(w http.ResponseWriter, view string, data interface{}) {
	if err := h.renderer.Render(w, view, data); err != nil {
		log.Printf("ERROR: Failed to render view %q: %v", view, err)
		respondError(w, http.StatusInternalServerError, "An error occurred while rendering the page.")
	}
}

// reqID extracts a required positive integer identifier from the form.
func reqID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// optText returns the trimmed field value, or nil if the field was absent
// or blank. Blank means "leave unchanged" for sparse updates.
func optText(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.PostFormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

func optInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

func optInt32(r *http.Request, name string) (*int32, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	v32 := int32(v)
	return &v32, nil
}

func optFloat64(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

// optBool accepts strconv booleans plus the bare HTML checkbox value "on".
func optBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return nil, nil
	}
	if strings.EqualFold(raw, "on") {
		t := true
		return &t, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", name)
	}
	return &v, nil
}

func optDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in %s form", name, dateLayout)
	}
	return &v, nil
}

// --- Read routes ---

func (h *HTTPHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "home", nil)
}

func (h *HTTPHandler) ClientsPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadClientsPage(r.Context())
	if err != nil {
		log.Printf("ERROR: Failed to load clients page: %v", err)
		respondError(w, http.StatusInternalServerError, "An error occurred while retrieving client data.")
		return
	}
	h.renderPage(w, "clients", page)
}

func (h *HTTPHandler) ProductsPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadProductsPage(r.Context())
	if err != nil {
		log.Printf("ERROR: Failed to load products page: %v", err)
		respondError(w, http.StatusInternalServerError, "An error occurred while retrieving product data.")
		return
	}
	h.renderPage(w, "products", page)
}

func (h *HTTPHandler) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadCategoriesPage(r.Context())
	if err != nil {
		log.Printf("ERROR: Failed to load categories page: %v", err)
		respondError(w, http.StatusInternalServerError, "An error occurred while retrieving category data.")
		return
	}
	h.renderPage(w, "categories", page)
}

func (h *HTTPHandler) SalesOrdersPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadSalesOrdersPage(r.Context())
	if err != nil {
		log.Printf("ERROR: Failed to load sales orders page: %v", err)
		respondError(w, http.StatusInternalServerError, "An error occurred while retrieving sales order data.")
		return
	}
	h.renderPage(w, "salesorders", page)
}

func (h *HTTPHandler) OrderItemsPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadOrderItemsPage(r.Context())
	if err != nil {
		log.Printf("ERROR: Failed to load order items page: %v", err)
		respondError(w, http.StatusInternalServerError, "An error occurred while retrieving order item data.")
		return
	}
	h.renderPage(w, "orderitems", page)
}

// Reset reseeds the whole dataset and lands back on the home page.
func (h *HTTPHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		log.Printf("ERROR: Reset store operation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "An error occurred while resetting the database.")
		return
	}
	log.Println("INFO: Database reset successfully.")
	redirect(w, r, "/")
}

// --- Category routes ---

// CategoryAddInput defines the expected form input for creating a category.
type CategoryAddInput struct {
	CategoryName string `validate:"required,max=255"`
}

func (h *HTTPHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	input := CategoryAddInput{
		CategoryName: strings.TrimSpace(r.PostFormValue("categoryName")),
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err := h.store.InsertCategory(r.Context(), store.NewCategory{CategoryName: input.CategoryName})
	if err != nil {
		respondStoreError(w, "AddCategory", err, "Add failed. A category with that name already exists.")
		return
	}
	redirect(w, r, "/categories")
}

func (h *HTTPHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "categoryID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	upd := store.CategoryUpdate{CategoryName: optText(r, "categoryName")}
	if err := h.store.UpdateCategory(r.Context(), id, upd); err != nil {
		respondStoreError(w, "UpdateCategory", err, "Update failed. A category with that name already exists.")
		return
	}
	redirect(w, r, "/categories")
}

func (h *HTTPHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "delete_category_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		respondStoreError(w, "DeleteCategory", err, "Delete failed. Clients still reference this category.")
		return
	}
	redirect(w, r, "/categories")
}

// --- Client routes ---

// ClientAddInput defines the expected form input for creating a client.
type ClientAddInput struct {
	FirstName   string `validate:"required,max=100"`
	LastName    string `validate:"required,max=100"`
	Email       string `validate:"required,email,max=255"`
	PhoneNumber string `validate:"required,max=50"`
	Address     string `validate:"required,max=255"`
	CategoryID  int64  `validate:"required,gt=0"`
}

func (h *HTTPHandler) AddClient(w http.ResponseWriter, r *http.Request) {
	categoryID, err := optInt64(r, "categoryID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	input := ClientAddInput{
		FirstName:   strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:    strings.TrimSpace(r.PostFormValue("lastName")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		PhoneNumber: strings.TrimSpace(r.PostFormValue("phoneNumber")),
		Address:     strings.TrimSpace(r.PostFormValue("address")),
	}
	if categoryID != nil {
		input.CategoryID = *categoryID
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err = h.store.InsertClient(r.Context(), store.NewClient{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		respondStoreError(w, "AddClient", err, "Add failed. Check that the category exists and the email is not already in use.")
		return
	}
	redirect(w, r, "/clients")
}

func (h *HTTPHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	categoryID, err := optInt64(r, "categoryID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	upd := store.ClientUpdate{
		FirstName:   optText(r, "firstName"),
		LastName:    optText(r, "lastName"),
		Email:       optText(r, "email"),
		PhoneNumber: optText(r, "phoneNumber"),
		Address:     optText(r, "address"),
		CategoryID:  categoryID,
	}
	if err := h.store.UpdateClient(r.Context(), id, upd); err != nil {
		respondStoreError(w, "UpdateClient", err, "Update failed. Check that the category exists.")
		return
	}
	redirect(w, r, "/clients")
}

func (h *HTTPHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "delete_client_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.store.DeleteClient(r.Context(), id); err != nil {
		respondStoreError(w, "DeleteClient", err, "Delete failed. Sales orders still reference this client.")
		return
	}
	redirect(w, r, "/clients")
}

// --- Product routes ---

// ProductAddInput defines the expected form input for creating a product.
type ProductAddInput struct {
	ProductName        string  `validate:"required,max=255"`
	BeerType           string  `validate:"required,max=100"`
	BeerPrice          float64 `validate:"gte=0"`
	ProductInStock     int32   `validate:"gte=0"`
	CurrentlyAvailable bool
}

func (h *HTTPHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	price, err := optFloat64(r, "beerPrice")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	stock, err := optInt32(r, "productInStock")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	available, err := optBool(r, "currentlyAvailable")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	input := ProductAddInput{
		ProductName: strings.TrimSpace(r.PostFormValue("productName")),
		BeerType:    strings.TrimSpace(r.PostFormValue("beerType")),
	}
	if price != nil {
		input.BeerPrice = *price
	}
	if stock != nil {
		input.ProductInStock = *stock
	}
	if available != nil {
		input.CurrentlyAvailable = *available
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err = h.store.InsertProduct(r.Context(), store.NewProduct{
		ProductName:        input.ProductName,
		BeerType:           input.BeerType,
		BeerPrice:          input.BeerPrice,
		ProductInStock:     input.ProductInStock,
		CurrentlyAvailable: input.CurrentlyAvailable,
	})
	if err != nil {
		respondStoreError(w, "AddProduct", err, "Add failed. A product with that name already exists.")
		return
	}
	redirect(w, r, "/products")
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	price, err := optFloat64(r, "beerPrice")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	stock, err := optInt32(r, "productInStock")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	available, err := optBool(r, "currentlyAvailable")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	upd := store.ProductUpdate{
		ProductName:        optText(r, "productName"),
		BeerType:           optText(r, "beerType"),
		BeerPrice:          price,
		ProductInStock:     stock,
		CurrentlyAvailable: available,
	}
	if err := h.store.UpdateProduct(r.Context(), id, upd); err != nil {
		respondStoreError(w, "UpdateProduct", err, "Update failed. A product with that name already exists.")
		return
	}
	redirect(w, r, "/products")
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "delete_product_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		respondStoreError(w, "DeleteProduct", err, "Delete failed. Order items still reference this product.")
		return
	}
	redirect(w, r, "/products")
}

// --- Sales order routes ---

// SalesOrderAddInput defines the expected form input for creating a sales order.
type SalesOrderAddInput struct {
	OrderDate   time.Time `validate:"required"`
	ClientID    int64     `validate:"required,gt=0"`
	TotalAmount float64   `validate:"gte=0"`
	OrderStatus string    `validate:"required,oneof=pending shipped cancelled"`
}

func (h *HTTPHandler) AddSalesOrder(w http.ResponseWriter, r *http.Request) {
	orderDate, err := optDate(r, "orderDate")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	clientID, err := optInt64(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	totalAmount, err := optFloat64(r, "totalAmount")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	input := SalesOrderAddInput{
		OrderStatus: strings.TrimSpace(r.PostFormValue("orderStatus")),
	}
	if orderDate != nil {
		input.OrderDate = *orderDate
	}
	if clientID != nil {
		input.ClientID = *clientID
	}
	if totalAmount != nil {
		input.TotalAmount = *totalAmount
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err = h.store.InsertSalesOrder(r.Context(), store.NewSalesOrder{
		OrderDate:   input.OrderDate,
		ClientID:    input.ClientID,
		TotalAmount: input.TotalAmount,
		OrderStatus: input.OrderStatus,
	})
	if err != nil {
		respondStoreError(w, "AddSalesOrder", err, "Add failed. Check that the client exists.")
		return
	}
	redirect(w, r, "/salesorders")
}

func (h *HTTPHandler) UpdateSalesOrder(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "orderID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	orderDate, err := optDate(r, "orderDate")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	clientID, err := optInt64(r, "clientID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	totalAmount, err := optFloat64(r, "totalAmount")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	upd := store.SalesOrderUpdate{
		OrderDate:   orderDate,
		ClientID:    clientID,
		TotalAmount: totalAmount,
		OrderStatus: optText(r, "orderStatus"),
	}
	if err := h.store.UpdateSalesOrder(r.Context(), id, upd); err != nil {
		respondStoreError(w, "UpdateSalesOrder", err, "Update failed. Check that the client exists.")
		return
	}
	redirect(w, r, "/salesorders")
}

func (h *HTTPHandler) DeleteSalesOrder(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "delete_salesorder_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.store.DeleteSalesOrder(r.Context(), id); err != nil {
		respondStoreError(w, "DeleteSalesOrder", err, "Delete failed. Order items still reference this order.")
		return
	}
	redirect(w, r, "/salesorders")
}

// --- Order item routes ---

// OrderItemAddInput defines the expected form input for creating an order item.
type OrderItemAddInput struct {
	OrderID   int64   `validate:"required,gt=0"`
	ProductID int64   `validate:"required,gt=0"`
	OrderQty  int32   `validate:"required,gt=0"`
	UnitPrice float64 `validate:"gte=0"`
}

func (h *HTTPHandler) AddOrderItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := optInt64(r, "orderID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	productID, err := optInt64(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	orderQty, err := optInt32(r, "orderQty")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	unitPrice, err := optFloat64(r, "unitPrice")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	var input OrderItemAddInput
	if orderID != nil {
		input.OrderID = *orderID
	}
	if productID != nil {
		input.ProductID = *productID
	}
	if orderQty != nil {
		input.OrderQty = *orderQty
	}
	if unitPrice != nil {
		input.UnitPrice = *unitPrice
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err = h.store.InsertOrderItem(r.Context(), store.NewOrderItem{
		OrderID:   input.OrderID,
		ProductID: input.ProductID,
		OrderQty:  input.OrderQty,
		UnitPrice: input.UnitPrice,
	})
	if err != nil {
		respondStoreError(w, "AddOrderItem", err, "Add failed. Did you try to add a duplicate product to the same order?")
		return
	}
	redirect(w, r, "/orderitems")
}

func (h *HTTPHandler) UpdateOrderItem(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "orderItemID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	orderQty, err := optInt32(r, "orderQty")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	unitPrice, err := optFloat64(r, "unitPrice")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	upd := store.OrderItemUpdate{
		OrderQty:  orderQty,
		UnitPrice: unitPrice,
	}
	if err := h.store.UpdateOrderItem(r.Context(), id, upd); err != nil {
		respondStoreError(w, "UpdateOrderItem", err, "Update failed.")
		return
	}
	redirect(w, r, "/orderitems")
}

func (h *HTTPHandler) DeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	id, err := reqID(r, "delete_orderitem_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.store.DeleteOrderItem(r.Context(), id); err != nil {
		respondStoreError(w, "DeleteOrderItem", err, "Delete failed.")
		return
	}
	redirect(w, r, "/orderitems")
}

// --- Route registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/reset", h.Reset)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.ClientsPage)
		r.Post("/add", h.AddClient)
		r.Post("/update", h.UpdateClient)
		r.Post("/delete", h.DeleteClient)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ProductsPage)
		r.Post("/add", h.AddProduct)
		r.Post("/update", h.UpdateProduct)
		r.Post("/delete", h.DeleteProduct)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.CategoriesPage)
		r.Post("/add", h.AddCategory)
		r.Post("/update", h.UpdateCategory)
		r.Post("/delete", h.DeleteCategory)
	})

	r.Route("/salesorders", func(r chi.Router) {
		r.Get("/", h.SalesOrdersPage)
		r.Post("/add", h.AddSalesOrder)
		r.Post("/update", h.UpdateSalesOrder)
		r.Post("/delete", h.DeleteSalesOrder)
	})

	r.Route("/orderitems", func(r chi.Router) {
		r.Get("/", h.OrderItemsPage)
		r.Post("/add", h.AddOrderItem)
		r.Post("/update", h.UpdateOrderItem)
		r.Post("/delete", h.DeleteOrderItem)
	})
}
