package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/pwrstore/storeclient/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware локального фасада.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.Logger(h.logger))

	r.Post("/login", h.Login)
	r.Post("/employee/login", h.EmployeeLogin)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/products", h.Products)
		r.Get("/products/{id}", h.Product)
		r.Get("/categories", h.Categories)
		r.Get("/stores", h.Stores)

		r.Get("/cart", h.Cart)
		r.Post("/cart/items", h.AddCartItem)
		r.Patch("/cart/items/{id}", h.UpdateCartItem)
		r.Delete("/cart/items/{id}", h.RemoveCartItem)
		r.Delete("/cart", h.ClearCart)
		r.Put("/cart/pickup-store", h.SetPickupStore)

		r.Post("/checkout/availability", h.CheckAvailability)
		r.Post("/checkout/order", h.PlaceOrder)

		r.Get("/orders", h.Orders)
		r.Patch("/orders/{id}/status", h.UpdateOrderStatus)
		r.Get("/deliveries", h.Deliveries)
		r.Patch("/deliveries/{id}/status", h.UpdateDeliveryStatus)
		r.Get("/dashboard", h.Dashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

// requireAuth отклоняет запросы без открытой сессии, подсказывая путь входа.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.IsAuthenticated() {
			h.writeJSON(w, http.StatusUnauthorized, errorResponse{
				Error:     "authentication required",
				LoginPath: "/login",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
