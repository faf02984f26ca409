package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pwrstore/storeclient/internal/model"
)

type updateReturnStatusRequest struct {
	Status model.ReturnStatus `json:"status"`
}

// Returns возвращает страницу возвратов (для сотрудников).
func (c *Client) Returns(ctx context.Context, params *model.PageParams) (model.Page[model.Return], error) {
	var resp model.Page[model.Return]
	err := c.do(ctx, http.MethodGet, "/returns", pageQuery(params), nil, &resp)
	return resp, err
}

// Return возвращает возврат по идентификатору.
func (c *Client) Return(ctx context.Context, id int64) (model.Return, error) {
	var resp model.Return
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/returns/%d", id), nil, nil, &resp)
	return resp, err
}

// CreateReturn оформляет возврат товара.
func (c *Client) CreateReturn(ctx context.Context, req model.CreateReturnRequest) (model.Return, error) {
	var resp model.Return
	err := c.do(ctx, http.MethodPost, "/returns", nil, req, &resp)
	return resp, err
}

// UpdateReturnStatus меняет статус возврата (SPRZEDAWCA, KIEROWNIK).
// В отличие от заказов и поставок, статус передаётся телом запроса.
func (c *Client) UpdateReturnStatus(ctx context.Context, id int64, status model.ReturnStatus) (model.Return, error) {
	var resp model.Return
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/returns/%d/status", id), nil, updateReturnStatusRequest{Status: status}, &resp)
	return resp, err
}

// Transactions возвращает страницу кассовых операций (для сотрудников).
func (c *Client) Transactions(ctx context.Context, params *model.PageParams) (model.Page[model.Transaction], error) {
	var resp model.Page[model.Transaction]
	err := c.do(ctx, http.MethodGet, "/transactions", pageQuery(params), nil, &resp)
	return resp, err
}

// Transaction возвращает кассовую операцию по идентификатору.
func (c *Client) Transaction(ctx context.Context, id int64) (model.Transaction, error) {
	var resp model.Transaction
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, nil, &resp)
	return resp, err
}

// CreateTransaction регистрирует кассовую операцию.
func (c *Client) CreateTransaction(ctx context.Context, req model.CreateTransactionRequest) (model.Transaction, error) {
	var resp model.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &resp)
	return resp, err
}

// Employees возвращает страницу сотрудников.
func (c *Client) Employees(ctx context.Context, params *model.PageParams) (model.Page[model.Employee], error) {
	var resp model.Page[model.Employee]
	err := c.do(ctx, http.MethodGet, "/employees", pageQuery(params), nil, &resp)
	return resp, err
}

// Employee возвращает сотрудника по идентификатору.
func (c *Client) Employee(ctx context.Context, id int64) (model.Employee, error) {
	var resp model.Employee
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, nil, &resp)
	return resp, err
}

// CreateEmployee создаёт сотрудника (только KIEROWNIK).
func (c *Client) CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) (model.Employee, error) {
	var resp model.Employee
	err := c.do(ctx, http.MethodPost, "/employees", nil, req, &resp)
	return resp, err
}

// UpdateEmployee изменяет данные сотрудника (только KIEROWNIK).
func (c *Client) UpdateEmployee(ctx context.Context, id int64, req model.UpdateEmployeeRequest) (model.Employee, error) {
	var resp model.Employee
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), nil, req, &resp)
	return resp, err
}

// ToggleEmployeeStatus переключает активность сотрудника.
func (c *Client) ToggleEmployeeStatus(ctx context.Context, id int64) (model.Employee, error) {
	var resp model.Employee
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/employees/%d/toggle-status", id), nil, nil, &resp)
	return resp, err
}

// DeleteEmployee удаляет сотрудника (только KIEROWNIK).
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, nil, nil)
}
