package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pwrstore/storeclient/internal/model"
)

// ProductsParams описывает параметры выборки каталога.
type ProductsParams struct {
	Page       int
	Size       int
	Query      string
	CategoryID int64
}

// Products возвращает страницу каталога. Поисковый запрос и фильтр по
// категории переключают на соответствующие эндпоинты сервера.
func (c *Client) Products(ctx context.Context, params ProductsParams) (model.Page[model.Product], error) {
	page := &model.PageParams{Page: params.Page, Size: params.Size}

	path := "/products"
	q := pageQuery(page)
	switch {
	case params.Query != "":
		path = "/products/search"
		q.Set("query", params.Query)
	case params.CategoryID != 0:
		path = fmt.Sprintf("/products/category/%d", params.CategoryID)
	}

	var resp model.Page[model.Product]
	err := c.do(ctx, http.MethodGet, path, q, nil, &resp)
	return resp, err
}

// Product возвращает товар по идентификатору.
func (c *Client) Product(ctx context.Context, id int64) (model.Product, error) {
	var resp model.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &resp)
	return resp, err
}

// ProductAvailability возвращает наличие товара по всем магазинам сети.
func (c *Client) ProductAvailability(ctx context.Context, id int64) (model.ProductStoreAvailability, error) {
	var resp model.ProductStoreAvailability
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/availability", id), nil, nil, &resp)
	return resp, err
}

// CreateProduct создаёт товар (только KIEROWNIK).
func (c *Client) CreateProduct(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	var resp model.Product
	err := c.do(ctx, http.MethodPost, "/products", nil, req, &resp)
	return resp, err
}

// UpdateProduct изменяет товар (только KIEROWNIK).
func (c *Client) UpdateProduct(ctx context.Context, id int64, req model.CreateProductRequest) (model.Product, error) {
	var resp model.Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, req, &resp)
	return resp, err
}

// DeleteProduct удаляет товар (только KIEROWNIK).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

// Categories возвращает все категории. Эндпоинт отдаёт простой массив,
// без конверта пагинации.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var resp []model.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp)
	return resp, err
}

// Category возвращает категорию по идентификатору.
func (c *Client) Category(ctx context.Context, id int64) (model.Category, error) {
	var resp model.Category
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, nil, &resp)
	return resp, err
}

// CreateCategory создаёт категорию (только KIEROWNIK).
func (c *Client) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	var resp model.Category
	err := c.do(ctx, http.MethodPost, "/categories", nil, req, &resp)
	return resp, err
}

// UpdateCategory изменяет категорию (только KIEROWNIK).
func (c *Client) UpdateCategory(ctx context.Context, id int64, req model.CreateCategoryRequest) (model.Category, error) {
	var resp model.Category
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, req, &resp)
	return resp, err
}

// DeleteCategory удаляет категорию (только KIEROWNIK).
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, nil)
}
