package api

import (
	"context"
	"net/http"

	"github.com/pwrstore/storeclient/internal/model"
)

// CustomerLogin выполняет вход покупателя.
func (c *Client) CustomerLogin(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.doPublic(ctx, http.MethodPost, "/auth/customer/login", nil, req, &resp)
	return resp, err
}

// EmployeeLogin выполняет вход сотрудника.
func (c *Client) EmployeeLogin(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.doPublic(ctx, http.MethodPost, "/auth/employee/login", nil, req, &resp)
	return resp, err
}

// RegisterCustomer регистрирует нового покупателя.
func (c *Client) RegisterCustomer(ctx context.Context, req model.RegisterCustomerRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.doPublic(ctx, http.MethodPost, "/auth/customer/register", nil, req, &resp)
	return resp, err
}
