package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pwrstore/storeclient/internal/model"
)

// Stores возвращает страницу магазинов сети.
func (c *Client) Stores(ctx context.Context, params *model.PageParams) (model.Page[model.StoreInfo], error) {
	var resp model.Page[model.StoreInfo]
	err := c.do(ctx, http.MethodGet, "/stores", pageQuery(params), nil, &resp)
	return resp, err
}

// Store возвращает магазин по идентификатору.
func (c *Client) Store(ctx context.Context, id int64) (model.StoreInfo, error) {
	var resp model.StoreInfo
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stores/%d", id), nil, nil, &resp)
	return resp, err
}

// StoreInventory возвращает инвентарь магазина. Простой массив без конверта.
func (c *Client) StoreInventory(ctx context.Context, id int64) ([]model.StoreInventoryItem, error) {
	var resp []model.StoreInventoryItem
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stores/%d/inventory", id), nil, nil, &resp)
	return resp, err
}

// LowStock возвращает товары магазина с запасом ниже порога. Простой массив.
func (c *Client) LowStock(ctx context.Context, id int64) ([]model.LowStockItem, error) {
	var resp []model.LowStockItem
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stores/%d/low-stock", id), nil, nil, &resp)
	return resp, err
}

// CreateAutoDelivery создаёт автоматическую поставку для дефицитных позиций магазина.
func (c *Client) CreateAutoDelivery(ctx context.Context, id int64) (model.Delivery, error) {
	var resp model.Delivery
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/stores/%d/auto-delivery", id), nil, nil, &resp)
	return resp, err
}
