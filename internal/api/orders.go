package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pwrstore/storeclient/internal/model"
)

// CheckOrderAvailability выполняет серверную проверку наличия позиций заказа.
func (c *Client) CheckOrderAvailability(ctx context.Context, req model.CreateOrderRequest) (model.OrderAvailability, error) {
	var resp model.OrderAvailability
	err := c.do(ctx, http.MethodPost, "/orders/check-availability", nil, req, &resp)
	return resp, err
}

// CreateOrder оформляет заказ покупателя.
func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	var resp model.Order
	err := c.do(ctx, http.MethodPost, "/orders", nil, req, &resp)
	return resp, err
}

// MyOrders возвращает страницу заказов текущего покупателя.
func (c *Client) MyOrders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error) {
	var resp model.Page[model.Order]
	err := c.do(ctx, http.MethodGet, "/orders/my", pageQuery(params), nil, &resp)
	return resp, err
}

// Orders возвращает страницу всех заказов (для сотрудников).
func (c *Client) Orders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error) {
	var resp model.Page[model.Order]
	err := c.do(ctx, http.MethodGet, "/orders", pageQuery(params), nil, &resp)
	return resp, err
}

// Order возвращает заказ по идентификатору.
func (c *Client) Order(ctx context.Context, id int64) (model.Order, error) {
	var resp model.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &resp)
	return resp, err
}

// UpdateOrderStatus меняет статус заказа. Сервер принимает новый статус
// параметром запроса, а не телом.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	q := url.Values{}
	q.Set("status", string(status))

	var resp model.Order
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", id), q, nil, &resp)
	return resp, err
}
