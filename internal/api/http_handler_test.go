package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brewlogic-service/internal/domain"
	"brewlogic-service/internal/store"
)

// MockStorer is a mock implementation of store.Storer.
type MockStorer struct {
	mock.Mock
}

func (m *MockStorer) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var out []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		out = arg0.([]domain.Category)
	}
	return out, args.Error(1)
}

func (m *MockStorer) InsertCategory(ctx context.Context, c store.NewCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockStorer) UpdateCategory(ctx context.Context, id int64, upd store.CategoryUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockStorer) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorer) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	var out []domain.Client
	if arg0 := args.Get(0); arg0 != nil {
		out = arg0.([]domain.Client)
	}
	return out, args.Error(1)
}

func (m *MockStorer) InsertClient(ctx context.Context, c store.NewClient) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockStorer) UpdateClient(ctx context.Context, id int64, upd store.ClientUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockStorer) DeleteClient(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorer) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	var out []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		out = arg0.([]domain.Product)
	}
	return out, args.Error(1)
}

func (m *MockStorer) InsertProduct(ctx context.Context, p store.NewProduct) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockStorer) UpdateProduct(ctx context.Context, id int64, upd store.ProductUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockStorer) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorer) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	args := m.Called(ctx)
	var out []domain.SalesOrder
	if arg0 := args.Get(0); arg0 != nil {
		out = arg0.([]domain.SalesOrder)
	}
	return out, args.Error(1)
}

func (m *MockStorer) InsertSalesOrder(ctx context.Context, o store.NewSalesOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStorer) UpdateSalesOrder(ctx context.Context, id int64, upd store.SalesOrderUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockStorer) DeleteSalesOrder(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorer) ListOrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	args := m.Called(ctx)
	var out []domain.OrderItem
	if arg0 := args.Get(0); arg0 != nil {
		out = arg0.([]domain.OrderItem)
	}
	return out, args.Error(1)
}

func (m *MockStorer) InsertOrderItem(ctx context.Context, i store.NewOrderItem) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockStorer) UpdateOrderItem(ctx context.Context, id int64, upd store.OrderItemUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockStorer) DeleteOrderItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorer) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// stubRenderer records what the orchestrator asked it to render.
type stubRenderer struct {
	view string
	data interface{}
}

func (s *stubRenderer) Render(w io.Writer, view string, data interface{}) error {
	s.view = view
	s.data = data
	_, err := fmt.Fprintf(w, "rendered:%s", view)
	return err
}

// Helper for setting up tests with a chi router and handler
func setupTestChiServer(t *testing.T, s store.Storer) (*httptest.Server, *stubRenderer) {
	renderer := &stubRenderer{}
	handler := NewHTTPHandler(s, renderer)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return httptest.NewServer(router), renderer
}

// noRedirectClient returns the raw redirect response instead of following it.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, serverURL, path string, form url.Values) *http.Response {
	t.Helper()
	res, err := noRedirectClient().PostForm(serverURL+path, form)
	require.NoError(t, err)
	return res
}

// Helper function to get a pointer (useful for optional fields)
func PtrTo[T any](v T) *T {
	return &v
}

// --- Category mutations ---

func TestHTTPHandler_AddCategory_Success(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("InsertCategory", mock.Anything, store.NewCategory{CategoryName: "IPA"}).
		Return(nil).Once()

	res := postForm(t, server.URL, "/categories/add", url.Values{"categoryName": {"  IPA  "}})
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/categories", res.Header.Get("Location"))
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_AddCategory_MissingName(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	res := postForm(t, server.URL, "/categories/add", url.Values{"categoryName": {"   "}})
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "InsertCategory", mock.Anything, mock.Anything)
}

func TestHTTPHandler_AddCategory_DuplicateName(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("InsertCategory", mock.Anything, mock.Anything).
		Return(fmt.Errorf("store: InsertCategory: %w", store.ErrConstraint)).Once()

	res := postForm(t, server.URL, "/categories/add", url.Values{"categoryName": {"IPA"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusConflict, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "already exists")
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_DeleteCategory_Referenced(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("DeleteCategory", mock.Anything, int64(2)).
		Return(fmt.Errorf("store: DeleteCategory: %w", store.ErrConstraint)).Once()

	res := postForm(t, server.URL, "/categories/delete", url.Values{"delete_category_id": {"2"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusConflict, res.StatusCode)
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_DeleteCategory_MissingID(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	res := postForm(t, server.URL, "/categories/delete", url.Values{})
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
}

// --- Client mutations ---

func TestHTTPHandler_UpdateClient_SparseEmailOnly(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("UpdateClient", mock.Anything, int64(3), mock.MatchedBy(func(upd store.ClientUpdate) bool {
		return upd.Email != nil && *upd.Email == "a@b.com" &&
			upd.FirstName == nil && upd.LastName == nil &&
			upd.PhoneNumber == nil && upd.Address == nil && upd.CategoryID == nil
	})).Return(nil).Once()

	form := url.Values{
		"clientID":    {"3"},
		"firstName":   {""},
		"lastName":    {""},
		"email":       {"a@b.com"},
		"phoneNumber": {""},
		"address":     {""},
		"categoryID":  {""},
	}
	res := postForm(t, server.URL, "/clients/update", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/clients", res.Header.Get("Location"))
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_UpdateClient_AllBlankStillRedirects(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	// The repository treats an empty sparse set as a successful no-op.
	mockStore.On("UpdateClient", mock.Anything, int64(3), store.ClientUpdate{}).Return(nil).Once()

	res := postForm(t, server.URL, "/clients/update", url.Values{"clientID": {"3"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_UpdateClient_MissingID(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	res := postForm(t, server.URL, "/clients/update", url.Values{"email": {"a@b.com"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "UpdateClient", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTPHandler_UpdateClient_MalformedID(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	res := postForm(t, server.URL, "/clients/update", url.Values{"clientID": {"abc"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "UpdateClient", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTPHandler_AddClient_Success(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	expected := store.NewClient{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "555-0100",
		Address:     "12 Analytical Way",
		CategoryID:  1,
	}
	mockStore.On("InsertClient", mock.Anything, expected).Return(nil).Once()

	form := url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"email":       {"ada@example.com"},
		"phoneNumber": {"555-0100"},
		"address":     {"12 Analytical Way"},
		"categoryID":  {"1"},
	}
	res := postForm(t, server.URL, "/clients/add", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/clients", res.Header.Get("Location"))
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_AddClient_MissingCategory(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	form := url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"email":       {"ada@example.com"},
		"phoneNumber": {"555-0100"},
		"address":     {"12 Analytical Way"},
	}
	res := postForm(t, server.URL, "/clients/add", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "InsertClient", mock.Anything, mock.Anything)
}

// --- Product mutations ---

func TestHTTPHandler_UpdateProduct_ZeroStockAndFalseAvailability(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("UpdateProduct", mock.Anything, int64(5), mock.MatchedBy(func(upd store.ProductUpdate) bool {
		return upd.ProductInStock != nil && *upd.ProductInStock == 0 &&
			upd.CurrentlyAvailable != nil && !*upd.CurrentlyAvailable &&
			upd.ProductName == nil && upd.BeerType == nil && upd.BeerPrice == nil
	})).Return(nil).Once()

	form := url.Values{
		"productID":          {"5"},
		"productInStock":     {"0"},
		"currentlyAvailable": {"false"},
	}
	res := postForm(t, server.URL, "/products/update", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_UpdateProduct_MalformedPrice(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	form := url.Values{
		"productID": {"5"},
		"beerPrice": {"cheap"},
	}
	res := postForm(t, server.URL, "/products/update", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
}

// --- Sales order mutations ---

func TestHTTPHandler_AddSalesOrder_InvalidStatus(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	form := url.Values{
		"orderDate":   {"2025-07-14"},
		"clientID":    {"3"},
		"totalAmount": {"114.00"},
		"orderStatus": {"teleported"},
	}
	res := postForm(t, server.URL, "/salesorders/add", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	mockStore.AssertNotCalled(t, "InsertSalesOrder", mock.Anything, mock.Anything)
}

func TestHTTPHandler_AddSalesOrder_Success(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("InsertSalesOrder", mock.Anything, mock.MatchedBy(func(o store.NewSalesOrder) bool {
		return o.ClientID == 3 && o.TotalAmount == 114.00 && o.OrderStatus == "pending" &&
			o.OrderDate.Format("2006-01-02") == "2025-07-14"
	})).Return(nil).Once()

	form := url.Values{
		"orderDate":   {"2025-07-14"},
		"clientID":    {"3"},
		"totalAmount": {"114.00"},
		"orderStatus": {"pending"},
	}
	res := postForm(t, server.URL, "/salesorders/add", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/salesorders", res.Header.Get("Location"))
	mockStore.AssertExpectations(t)
}

// --- Order item mutations ---

func TestHTTPHandler_AddOrderItem_DuplicatePair(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("InsertOrderItem", mock.Anything, mock.Anything).
		Return(fmt.Errorf("store: InsertOrderItem: %w", store.ErrConstraint)).Once()

	form := url.Values{
		"orderID":   {"1"},
		"productID": {"2"},
		"orderQty":  {"6"},
		"unitPrice": {"9.50"},
	}
	res := postForm(t, server.URL, "/orderitems/add", form)
	defer res.Body.Close()

	require.Equal(t, http.StatusConflict, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "duplicate product")
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_DeleteOrderItem_Success(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("DeleteOrderItem", mock.Anything, int64(404)).Return(nil).Once()

	res := postForm(t, server.URL, "/orderitems/delete", url.Values{"delete_orderitem_id": {"404"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/orderitems", res.Header.Get("Location"))
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_DeleteOrderItem_StoreFailure(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("DeleteOrderItem", mock.Anything, int64(7)).
		Return(fmt.Errorf("store: DeleteOrderItem: connection refused")).Once()

	res := postForm(t, server.URL, "/orderitems/delete", url.Values{"delete_orderitem_id": {"7"}})
	defer res.Body.Close()

	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "connection refused", "store detail must not leak to the caller")
	mockStore.AssertExpectations(t)
}

// --- Read routes ---

func TestHTTPHandler_ClientsPage_BundlesClientsAndCategories(t *testing.T) {
	mockStore := new(MockStorer)
	server, renderer := setupTestChiServer(t, mockStore)
	defer server.Close()

	clients := []domain.Client{{ClientID: 1, FirstName: "Ada", LastName: "Lovelace", CategoryID: 2}}
	categories := []domain.Category{{CategoryID: 2, CategoryName: "Bars"}}
	mockStore.On("ListClients", mock.Anything).Return(clients, nil).Once()
	mockStore.On("ListCategories", mock.Anything).Return(categories, nil).Once()

	res, err := http.Get(server.URL + "/clients")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "clients", renderer.view)
	page, ok := renderer.data.(*ClientsPage)
	require.True(t, ok, "clients view should receive a *ClientsPage bundle")
	assert.Equal(t, clients, page.Clients)
	assert.Equal(t, categories, page.Categories)
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_ClientsPage_FailsWhenAnyReadFails(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("ListClients", mock.Anything).Return([]domain.Client{}, nil).Maybe()
	mockStore.On("ListCategories", mock.Anything).
		Return(nil, fmt.Errorf("store: ListCategories: connection refused")).Once()

	res, err := http.Get(server.URL + "/clients")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestHTTPHandler_OrderItemsPage_BundlesThreeReads(t *testing.T) {
	mockStore := new(MockStorer)
	server, renderer := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("ListOrderItems", mock.Anything).Return([]domain.OrderItem{{OrderItemID: 1}}, nil).Once()
	mockStore.On("ListProducts", mock.Anything).Return([]domain.Product{{ProductID: 2}}, nil).Once()
	mockStore.On("ListSalesOrders", mock.Anything).Return([]domain.SalesOrder{{OrderID: 3}}, nil).Once()

	res, err := http.Get(server.URL + "/orderitems")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "orderitems", renderer.view)
	page, ok := renderer.data.(*OrderItemsPage)
	require.True(t, ok)
	assert.Len(t, page.OrderItems, 1)
	assert.Len(t, page.Products, 1)
	assert.Len(t, page.SalesOrders, 1)
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_Reset_RedirectsHome(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("Reset", mock.Anything).Return(nil).Once()

	res, err := noRedirectClient().Get(server.URL + "/reset")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
	mockStore.AssertExpectations(t)
}

func TestHTTPHandler_Reset_StoreFailure(t *testing.T) {
	mockStore := new(MockStorer)
	server, _ := setupTestChiServer(t, mockStore)
	defer server.Close()

	mockStore.On("Reset", mock.Anything).
		Return(fmt.Errorf("store: Reset: connection refused")).Once()

	res, err := noRedirectClient().Get(server.URL + "/reset")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	mockStore.AssertExpectations(t)
}
