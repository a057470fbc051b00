package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"brewlogic-service/internal/domain"
)

// View bundles: each readable page gets exactly the entities it needs.
// Pages with foreign keys also carry the referenced entities so the view
// can resolve names and populate selection controls. The reads are
// independent, so they are issued concurrently; if any one fails the whole
// page read fails and nothing partial is rendered.

// ClientsPage backs the /clients view. Categories feed the category
// dropdown and let the view show category names.
type ClientsPage struct {
	Clients    []domain.Client
	Categories []domain.Category
}

// ProductsPage backs the /products view.
type ProductsPage struct {
	Products []domain.Product
}

// CategoriesPage backs the /categories view.
type CategoriesPage struct {
	Categories []domain.Category
}

// SalesOrdersPage backs the /salesorders view. Clients let the view
// resolve client names.
type SalesOrdersPage struct {
	SalesOrders []domain.SalesOrder
	Clients     []domain.Client
}

// OrderItemsPage backs the /orderitems view. Products and SalesOrders
// populate the selection controls for new lines.
type OrderItemsPage struct {
	OrderItems  []domain.OrderItem
	Products    []domain.Product
	SalesOrders []domain.SalesOrder
}

func (h *HTTPHandler) loadClientsPage(ctx context.Context) (*ClientsPage, error) {
	var page ClientsPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Clients, err = h.store.ListClients(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = h.store.ListCategories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (h *HTTPHandler) loadProductsPage(ctx context.Context) (*ProductsPage, error) {
	products, err := h.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductsPage{Products: products}, nil
}

func (h *HTTPHandler) loadCategoriesPage(ctx context.Context) (*CategoriesPage, error) {
	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoriesPage{Categories: categories}, nil
}

func (h *HTTPHandler) loadSalesOrdersPage(ctx context.Context) (*SalesOrdersPage, error) {
	var page SalesOrdersPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.SalesOrders, err = h.store.ListSalesOrders(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Clients, err = h.store.ListClients(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (h *HTTPHandler) loadOrderItemsPage(ctx context.Context) (*OrderItemsPage, error) {
	var page OrderItemsPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.OrderItems, err = h.store.ListOrderItems(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Products, err = h.store.ListProducts(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.SalesOrders, err = h.store.ListSalesOrders(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}
