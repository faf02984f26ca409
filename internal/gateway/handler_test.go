package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/api"
	"github.com/pwrstore/storeclient/internal/cart"
	"github.com/pwrstore/storeclient/internal/checkout"
	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/service"
	"github.com/pwrstore/storeclient/internal/session"
	"github.com/pwrstore/storeclient/internal/storage"
)

type stubBackend struct {
	loginResp model.AuthResponse
	loginErr  error

	products map[int64]model.Product

	availability map[int64]model.ProductStoreAvailability

	orderResp model.Order
	orderErr  error
	lastOrder model.CreateOrderRequest

	ordersResp   model.Page[model.Order]
	myOrdersResp model.Page[model.Order]

	statusResp model.Order
	lastStatus model.OrderStatus
}

func (s *stubBackend) CustomerLogin(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubBackend) EmployeeLogin(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubBackend) RegisterCustomer(ctx context.Context, req model.RegisterCustomerRequest) (model.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubBackend) Products(ctx context.Context, params api.ProductsParams) (model.Page[model.Product], error) {
	out := model.Page[model.Product]{}
	for _, p := range s.products {
		out.Content = append(out.Content, p)
	}
	out.TotalElements = len(out.Content)
	return out, nil
}

func (s *stubBackend) Product(ctx context.Context, id int64) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, &model.APIError{Status: http.StatusNotFound, Message: "product not found"}
	}
	return p, nil
}

func (s *stubBackend) ProductAvailability(ctx context.Context, id int64) (model.ProductStoreAvailability, error) {
	return s.availability[id], nil
}

func (s *stubBackend) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	s.lastOrder = req
	return s.orderResp, s.orderErr
}

func (s *stubBackend) Categories(ctx context.Context) ([]model.Category, error) {
	return []model.Category{{CategoryID: 1, Name: "Nabial"}}, nil
}

func (s *stubBackend) Stores(ctx context.Context, params *model.PageParams) (model.Page[model.StoreInfo], error) {
	return model.Page[model.StoreInfo]{Content: []model.StoreInfo{{StoreID: 5}}}, nil
}

func (s *stubBackend) Orders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error) {
	return s.ordersResp, nil
}

func (s *stubBackend) MyOrders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error) {
	return s.myOrdersResp, nil
}

func (s *stubBackend) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	s.lastStatus = status
	return s.statusResp, nil
}

func (s *stubBackend) Deliveries(ctx context.Context, params *model.PageParams) (model.Page[model.Delivery], error) {
	return model.Page[model.Delivery]{}, nil
}

func (s *stubBackend) UpdateDeliveryStatus(ctx context.Context, id int64, status model.DeliveryStatus) (model.Delivery, error) {
	return model.Delivery{DeliveryID: id, Status: status}, nil
}

func (s *stubBackend) DashboardStats(ctx context.Context) (service.DashboardStats, error) {
	return service.DashboardStats{TotalOrders: 3}, nil
}

type fixture struct {
	handler  *Handler
	backend  *stubBackend
	sessions *session.Store
	cart     *cart.Store
}

func newFixture(t *testing.T, backend *stubBackend) *fixture {
	t.Helper()

	st, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	logger := zap.NewNop()
	sessions := session.NewStore(st, logger)
	cartStore := cart.NewStore(st, logger)
	orch := checkout.NewOrchestrator(backend, cartStore, logger)

	return &fixture{
		handler:  NewHandler(backend, backend, sessions, cartStore, orch, logger),
		backend:  backend,
		sessions: sessions,
		cart:     cartStore,
	}
}

func (f *fixture) authenticate() {
	f.sessions.Login(model.AuthResponse{
		Token:    "t",
		UserType: model.UserTypeCustomer,
		Username: "jan",
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	f := newFixture(t, &stubBackend{})
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodGet, "/products", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.LoginPath != "/login" {
		t.Fatalf("loginPath = %q, want /login hint", resp.LoginPath)
	}
}

func TestLoginOpensSession(t *testing.T) {
	backend := &stubBackend{loginResp: model.AuthResponse{
		Token:    "issued",
		UserType: model.UserTypeCustomer,
		Username: "jan",
	}}
	f := newFixture(t, backend)
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPost, "/login", model.LoginRequest{Username: "jan", Password: "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !f.sessions.IsAuthenticated() || f.sessions.Token() != "issued" {
		t.Fatalf("login must open the local session")
	}
}

func TestLoginFailurePassesServerStatus(t *testing.T) {
	backend := &stubBackend{loginErr: &model.APIError{
		Status:  http.StatusUnauthorized,
		Message: "Invalid credentials",
	}}
	f := newFixture(t, backend)
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPost, "/login", model.LoginRequest{Username: "jan", Password: "bad"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 from server", rec.Code)
	}
	if f.sessions.IsAuthenticated() {
		t.Fatalf("rejected login must not open a session")
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	f := newFixture(t, &stubBackend{})
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPost, "/register", model.RegisterCustomerRequest{
		FirstName:   "J",
		LastName:    "Kowalski",
		Email:       "jan@example.com",
		PhoneNumber: "123456789",
		Password:    "secret1",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for invalid name", rec.Code)
	}
}

func TestLogoutKeepsCart(t *testing.T) {
	f := newFixture(t, &stubBackend{
		products: map[int64]model.Product{1: {ProductID: 1, Name: "Mleko", BasePrice: 4}},
	})
	f.authenticate()
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequest{ProductID: 1, Quantity: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add item status = %d, body %s", rec.Code, rec.Body.String())
	}

	if rec := doJSON(t, router, http.MethodPost, "/logout", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}

	if f.sessions.IsAuthenticated() {
		t.Fatalf("logout must close the session")
	}
	if f.cart.ItemCount() != 2 {
		t.Fatalf("logout must not touch the cart")
	}
}

func TestAddCartItemSnapshotsProduct(t *testing.T) {
	f := newFixture(t, &stubBackend{
		products: map[int64]model.Product{1: {ProductID: 1, Name: "Mleko", BasePrice: 4.5}},
	})
	f.authenticate()
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequest{ProductID: 1, Quantity: 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ItemCount != 3 || resp.TotalAmount != 13.5 {
		t.Fatalf("cart = %+v, want 3 items for 13.50", resp)
	}
}

func TestAddUnknownProductFails(t *testing.T) {
	f := newFixture(t, &stubBackend{products: map[int64]model.Product{}})
	f.authenticate()
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequest{ProductID: 9, Quantity: 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 passed through", rec.Code)
	}
	if f.cart.ItemCount() != 0 {
		t.Fatalf("unknown product must not enter the cart")
	}
}

func TestCheckoutAvailabilityFlow(t *testing.T) {
	backend := &stubBackend{
		products: map[int64]model.Product{1: {ProductID: 1, Name: "Mleko", BasePrice: 4}},
		availability: map[int64]model.ProductStoreAvailability{
			1: {ProductID: 1, StoreAvailability: map[string]model.StoreAvailability{
				"5": {StoreID: 5, AvailableCount: 2},
			}},
		},
		orderResp: model.Order{OrderID: 11, Status: model.OrderStatusNew},
	}
	f := newFixture(t, backend)
	f.authenticate()
	router := f.handler.SetupRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequest{ProductID: 1, Quantity: 3})
	doJSON(t, router, http.MethodPut, "/cart/pickup-store", pickupStoreRequest{StoreID: 5})

	rec := doJSON(t, router, http.MethodPost, "/checkout/availability", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("availability status = %d, body %s", rec.Code, rec.Body.String())
	}

	var avail availabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &avail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if avail.State != checkout.StatePartiallyUnavailable || len(avail.Shortages) != 1 {
		t.Fatalf("availability = %+v, want one shortage", avail)
	}

	rec = doJSON(t, router, http.MethodPost, "/checkout/order", placeOrderRequest{IgnoreAvailability: true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("order status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !backend.lastOrder.IgnoreAvailability {
		t.Fatalf("confirmation must resend with ignoreAvailability")
	}
	if f.cart.ItemCount() != 0 {
		t.Fatalf("placed order must clear the cart")
	}
}

func TestCheckoutWithoutStoreConflicts(t *testing.T) {
	f := newFixture(t, &stubBackend{
		products: map[int64]model.Product{1: {ProductID: 1, Name: "Mleko"}},
	})
	f.authenticate()
	router := f.handler.SetupRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequest{ProductID: 1, Quantity: 1})

	rec := doJSON(t, router, http.MethodPost, "/checkout/availability", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 without a pickup store", rec.Code)
	}
}

func TestOrdersRouteByRole(t *testing.T) {
	backend := &stubBackend{
		ordersResp:   model.Page[model.Order]{Content: []model.Order{{OrderID: 1}, {OrderID: 2}}},
		myOrdersResp: model.Page[model.Order]{Content: []model.Order{{OrderID: 1}}},
	}
	f := newFixture(t, backend)
	router := f.handler.SetupRouter()

	f.sessions.Login(model.AuthResponse{Token: "t", UserType: model.UserTypeCustomer, Username: "jan"})
	rec := doJSON(t, router, http.MethodGet, "/orders", nil)
	var page model.Page[model.Order]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(page.Content) != 1 {
		t.Fatalf("customer orders = %d, want own orders only", len(page.Content))
	}

	f.sessions.Login(model.AuthResponse{Token: "t", UserType: model.UserTypeEmployee, Username: "anna", Role: model.RoleManager})
	rec = doJSON(t, router, http.MethodGet, "/orders", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(page.Content) != 2 {
		t.Fatalf("employee orders = %d, want full listing", len(page.Content))
	}
}

func TestUpdateOrderStatusRequiresQuery(t *testing.T) {
	f := newFixture(t, &stubBackend{statusResp: model.Order{OrderID: 7, Status: model.OrderStatusApproved}})
	f.authenticate()
	router := f.handler.SetupRouter()

	rec := doJSON(t, router, http.MethodPatch, "/orders/7/status", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without the status parameter", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPatch, "/orders/7/status?status=ZATWIERDZONY", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if f.backend.lastStatus != model.OrderStatusApproved {
		t.Fatalf("forwarded status = %s", f.backend.lastStatus)
	}
}
