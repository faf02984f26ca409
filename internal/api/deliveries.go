package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pwrstore/storeclient/internal/model"
)

// Deliveries возвращает страницу поставок (MAGAZYNIER, KIEROWNIK).
func (c *Client) Deliveries(ctx context.Context, params *model.PageParams) (model.Page[model.Delivery], error) {
	var resp model.Page[model.Delivery]
	err := c.do(ctx, http.MethodGet, "/deliveries", pageQuery(params), nil, &resp)
	return resp, err
}

// Delivery возвращает поставку по идентификатору.
func (c *Client) Delivery(ctx context.Context, id int64) (model.Delivery, error) {
	var resp model.Delivery
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/deliveries/%d", id), nil, nil, &resp)
	return resp, err
}

// RestockSuggestions возвращает рекомендации пополнения. Простой массив.
func (c *Client) RestockSuggestions(ctx context.Context) ([]model.RestockSuggestion, error) {
	var resp []model.RestockSuggestion
	err := c.do(ctx, http.MethodGet, "/deliveries/suggestions", nil, nil, &resp)
	return resp, err
}

// CreateDelivery создаёт поставку.
func (c *Client) CreateDelivery(ctx context.Context, req model.CreateDeliveryRequest) (model.Delivery, error) {
	var resp model.Delivery
	err := c.do(ctx, http.MethodPost, "/deliveries", nil, req, &resp)
	return resp, err
}

// UpdateDeliveryStatus меняет статус поставки. Статус передаётся параметром запроса.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, id int64, status model.DeliveryStatus) (model.Delivery, error) {
	q := url.Values{}
	q.Set("status", string(status))

	var resp model.Delivery
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/deliveries/%d/status", id), q, nil, &resp)
	return resp, err
}
