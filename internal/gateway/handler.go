// Package gateway содержит HTTP-обработчики локального фасада клиента.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/api"
	"github.com/pwrstore/storeclient/internal/cart"
	"github.com/pwrstore/storeclient/internal/checkout"
	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/service"
	"github.com/pwrstore/storeclient/internal/session"
	"github.com/pwrstore/storeclient/internal/validation"
)

// Auth определяет операции аутентификации, используемые фасадом.
type Auth interface {
	CustomerLogin(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	EmployeeLogin(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	RegisterCustomer(ctx context.Context, req model.RegisterCustomerRequest) (model.AuthResponse, error)
}

// Catalog определяет операции чтения и мутаций, используемые фасадом.
type Catalog interface {
	Products(ctx context.Context, params api.ProductsParams) (model.Page[model.Product], error)
	Product(ctx context.Context, id int64) (model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Stores(ctx context.Context, params *model.PageParams) (model.Page[model.StoreInfo], error)
	Orders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error)
	MyOrders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
	Deliveries(ctx context.Context, params *model.PageParams) (model.Page[model.Delivery], error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status model.DeliveryStatus) (model.Delivery, error)
	DashboardStats(ctx context.Context) (service.DashboardStats, error)
}

// Handler реализует HTTP-обработчики локального фасада.
type Handler struct {
	auth     Auth
	catalog  Catalog
	sessions *session.Store
	cart     *cart.Store
	checkout *checkout.Orchestrator
	logger   *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика фасада.
func NewHandler(auth Auth, catalog Catalog, sessions *session.Store, cartStore *cart.Store, orch *checkout.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{
		auth:     auth,
		catalog:  catalog,
		sessions: sessions,
		cart:     cartStore,
		checkout: orch,
		logger:   logger,
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	LoginPath string `json:"loginPath,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// writeError транслирует ошибку серверного API в ответ фасада.
// Потеря авторизации дополнительно сообщает путь страницы входа.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		resp := errorResponse{Error: apiErr.Message}
		if apiErr.Status == http.StatusUnauthorized {
			resp.LoginPath = "/login"
		}
		h.writeJSON(w, apiErr.Status, resp)
		return
	}

	h.logger.Error("backend request", zap.Error(err))
	h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func pageParams(r *http.Request) *model.PageParams {
	q := r.URL.Query()
	if q.Get("page") == "" && q.Get("size") == "" {
		return nil
	}
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return &model.PageParams{Page: page, Size: size}
}

// Login выполняет вход покупателя.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.CustomerLogin)
}

// EmployeeLogin выполняет вход сотрудника.
func (h *Handler) EmployeeLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.EmployeeLogin)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, authenticate func(context.Context, model.LoginRequest) (model.AuthResponse, error)) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	resp, err := authenticate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.sessions.Login(resp)
	h.writeJSON(w, http.StatusOK, resp)
}

// Register регистрирует нового покупателя и сразу открывает сессию.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateRegistration(req); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	resp, err := h.auth.RegisterCustomer(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.sessions.Login(resp)
	h.writeJSON(w, http.StatusOK, resp)
}

// Logout закрывает локальную сессию. Корзина при этом сохраняется.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Products возвращает страницу каталога с поиском и фильтром по категории.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := api.ProductsParams{Query: q.Get("query")}
	params.Page, _ = strconv.Atoi(q.Get("page"))
	if size, err := strconv.Atoi(q.Get("size")); err == nil {
		params.Size = size
	}
	if catID, err := strconv.ParseInt(q.Get("categoryId"), 10, 64); err == nil {
		params.CategoryID = catID
	}

	page, err := h.catalog.Products(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// Product возвращает карточку товара.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, product)
}

// Categories возвращает список категорий.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cats)
}

// Stores возвращает страницу магазинов.
func (h *Handler) Stores(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Stores(r.Context(), pageParams(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

type cartResponse struct {
	Items         []cart.Item `json:"items"`
	PickupStoreID int64       `json:"pickupStoreId"`
	ItemCount     int         `json:"itemCount"`
	TotalAmount   float64     `json:"totalAmount"`
}

// Cart возвращает текущее содержимое корзины.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, cartResponse{
		Items:         h.cart.Items(),
		PickupStoreID: h.cart.PickupStoreID(),
		ItemCount:     h.cart.ItemCount(),
		TotalAmount:   h.cart.TotalAmount(),
	})
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddCartItem добавляет товар в корзину. Снимок товара берётся из каталога
// в момент добавления, цена дальше не перечитывается.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Quantity <= 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.cart.AddItem(product, req.Quantity)
	h.Cart(w, r)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem заменяет количество позиции. Ноль и меньше удаляет позицию.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.cart.UpdateQuantity(id, req.Quantity)
	h.Cart(w, r)
}

// RemoveCartItem удаляет позицию из корзины.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.cart.RemoveItem(id)
	h.Cart(w, r)
}

// ClearCart очищает корзину целиком.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart()
	w.WriteHeader(http.StatusNoContent)
}

type pickupStoreRequest struct {
	StoreID int64 `json:"storeId"`
}

// SetPickupStore запоминает магазин самовывоза для будущего заказа.
func (h *Handler) SetPickupStore(w http.ResponseWriter, r *http.Request) {
	var req pickupStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.StoreID <= 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.cart.SetPickupStore(req.StoreID)
	w.WriteHeader(http.StatusNoContent)
}

type availabilityResponse struct {
	State     checkout.State      `json:"state"`
	Shortages []checkout.Shortage `json:"shortages"`
}

// CheckAvailability проверяет наличие позиций корзины в выбранном магазине.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	shortages, err := h.checkout.CheckAvailability(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrNoPickupStore) || errors.Is(err, checkout.ErrEmptyCart) {
			h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, availabilityResponse{
		State:     h.checkout.State(),
		Shortages: shortages,
	})
}

type placeOrderRequest struct {
	IgnoreAvailability bool `json:"ignoreAvailability"`
}

// PlaceOrder оформляет заказ из корзины.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req.IgnoreAvailability)
	if err != nil {
		if errors.Is(err, checkout.ErrNoPickupStore) || errors.Is(err, checkout.ErrEmptyCart) {
			h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
}

// Orders возвращает заказы: покупателю свои, сотруднику все.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	var (
		page model.Page[model.Order]
		err  error
	)
	if h.sessions.IsEmployee() {
		page, err = h.catalog.Orders(r.Context(), pageParams(r))
	} else {
		page, err = h.catalog.MyOrders(r.Context(), pageParams(r))
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// UpdateOrderStatus меняет статус заказа (для сотрудников).
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.OrderStatus(r.URL.Query().Get("status"))
	if status == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.catalog.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

// Deliveries возвращает страницу поставок (для сотрудников).
func (h *Handler) Deliveries(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Deliveries(r.Context(), pageParams(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// UpdateDeliveryStatus меняет статус поставки (для сотрудников).
func (h *Handler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.DeliveryStatus(r.URL.Query().Get("status"))
	if status == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	delivery, err := h.catalog.UpdateDeliveryStatus(r.Context(), id, status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, delivery)
}

// Dashboard возвращает сводку менеджера, собранную из заказов и магазинов.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.DashboardStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// Session возвращает состояние локальной сессии.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.Current()
	if !ok {
		h.writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": false})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"user":            user,
	})
}
