// Package api предоставляет клиент REST API системы управления магазинами.
//
// Клиент — единственный исходящий шлюз: каждый запрос дополняется токеном
// текущей сессии, читаемым в момент вызова, а ответ 401 централизованно
// уничтожает сессию. Остальные ошибки без повторов передаются вызывающему.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/model"
)

// Sessions описывает доступ клиента к сессии аутентификации.
type Sessions interface {
	Token() string
	Logout()
}

// Client инкапсулирует HTTP-взаимодействие с бэкендом магазинов.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	sessions       Sessions
	logger         *zap.Logger
	onUnauthorized func()
}

// NewClient создаёт клиент API по указанному базовому адресу.
func NewClient(baseURL string, sessions Sessions, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		sessions: sessions,
		logger:   logger,
	}
}

// OnUnauthorized регистрирует обработчик, вызываемый после принудительного
// выхода по ответу 401 (например, для перенаправления на экран входа).
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do выполняет аутентифицированный запрос с глобальной обработкой 401.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.send(ctx, method, path, query, body, out, true)
}

// doPublic выполняет запрос без глобальной реакции на 401: ответ 401 на
// попытку входа — обычная ошибка учётных данных, а не потеря сессии.
func (c *Client) doPublic(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.send(ctx, method, path, query, body, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, handleAuth bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Токен читается в момент вызова, а не при создании клиента,
	// чтобы ротация токена подхватывалась немедленно.
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	apiErr := c.decodeError(resp, method, path)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if handleAuth {
			c.sessions.Logout()
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
	case http.StatusForbidden:
		c.logger.Warn("access denied", zap.String("method", method), zap.String("path", path))
	case http.StatusNotFound:
		c.logger.Warn("resource not found", zap.String("method", method), zap.String("path", path))
	}

	return apiErr
}

// decodeError читает конверт ошибки сервера; нечитаемое тело сворачивается
// в обобщённую ошибку с кодом статуса.
func (c *Client) decodeError(resp *http.Response, method, path string) error {
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		var apiErr model.APIError
		if jsonErr := json.Unmarshal(data, &apiErr); jsonErr == nil && (apiErr.Status != 0 || apiErr.Message != "") {
			if apiErr.Status == 0 {
				apiErr.Status = resp.StatusCode
			}
			return &apiErr
		}
	}
	return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
}

func pageQuery(params *model.PageParams) url.Values {
	q := url.Values{}
	if params == nil {
		return q
	}
	q.Set("page", fmt.Sprint(params.Page))
	size := params.Size
	if size <= 0 {
		size = 20
	}
	q.Set("size", fmt.Sprint(size))
	return q
}
