// Package checkout реализует оркестратор оформления заказа: проверку
// наличия позиций корзины в выбранном магазине и отправку заказа.
package checkout

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pwrstore/storeclient/internal/cart"
	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/validation"
)

// State описывает текущее состояние оформления заказа.
type State string

const (
	StateNoStoreSelected      State = "NO_STORE_SELECTED"
	StateCheckingAvailability State = "CHECKING_AVAILABILITY"
	StateAllAvailable         State = "ALL_AVAILABLE"
	StatePartiallyUnavailable State = "PARTIALLY_UNAVAILABLE"
	StateOrderSubmitting      State = "ORDER_SUBMITTING"
	StateOrderPlaced          State = "ORDER_PLACED"
	StateOrderFailed          State = "ORDER_FAILED"
)

var (
	// ErrNoPickupStore возвращается, когда магазин самовывоза не выбран.
	ErrNoPickupStore = errors.New("pickup store is not selected")
	// ErrEmptyCart возвращается при попытке оформить пустую корзину.
	ErrEmptyCart = errors.New("cart is empty")
)

// Shortage описывает нехватку товара в выбранном магазине.
type Shortage struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Catalog описывает операции каталога и заказов, нужные оркестратору.
type Catalog interface {
	ProductAvailability(ctx context.Context, id int64) (model.ProductStoreAvailability, error)
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error)
}

// Orchestrator ведёт покупателя через оформление заказа. Проверка наличия
// носит рекомендательный характер: окончательное решение за сервером,
// поэтому заказ можно отправить повторно с ignoreAvailability.
type Orchestrator struct {
	catalog Catalog
	cart    *cart.Store
	logger  *zap.Logger

	mu        sync.Mutex
	state     State
	shortages []Shortage
	lastOrder model.Order
	failure   string
}

// NewOrchestrator создаёт оркестратор поверх каталога и корзины.
func NewOrchestrator(catalog Catalog, cartStore *cart.Store, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		catalog: catalog,
		cart:    cartStore,
		logger:  logger,
		state:   StateNoStoreSelected,
	}
}

// State возвращает текущее состояние оформления.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Shortages возвращает нехватки, найденные последней проверкой наличия.
func (o *Orchestrator) Shortages() []Shortage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Shortage, len(o.shortages))
	copy(out, o.shortages)
	return out
}

// LastOrder возвращает последний успешно оформленный заказ.
func (o *Orchestrator) LastOrder() model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastOrder
}

// FailureMessage возвращает серверное сообщение последней неудачной отправки.
func (o *Orchestrator) FailureMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failure
}

// CheckAvailability проверяет наличие каждой позиции корзины в выбранном
// магазине. Запросы наличия выполняются параллельно, по одному на товар.
// Отсутствие магазина в ответе сервера трактуется как нулевой остаток.
func (o *Orchestrator) CheckAvailability(ctx context.Context) ([]Shortage, error) {
	storeID := o.cart.PickupStoreID()
	if storeID == 0 {
		o.setState(StateNoStoreSelected)
		return nil, ErrNoPickupStore
	}

	items := o.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	prev := o.State()
	o.setState(StateCheckingAvailability)

	storeKey := strconv.FormatInt(storeID, 10)
	found := make([]*Shortage, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			avail, err := o.catalog.ProductAvailability(gctx, it.Product.ProductID)
			if err != nil {
				return err
			}

			count := 0
			if store, ok := avail.StoreAvailability[storeKey]; ok {
				count = store.AvailableCount
			}
			if count < it.Quantity {
				found[i] = &Shortage{
					ProductID: it.Product.ProductID,
					Name:      it.Product.Name,
					Requested: it.Quantity,
					Available: count,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.setState(prev)
		return nil, err
	}

	// Результат собирается в порядке позиций корзины.
	shortages := make([]Shortage, 0, len(items))
	for _, s := range found {
		if s != nil {
			shortages = append(shortages, *s)
		}
	}

	o.mu.Lock()
	o.shortages = shortages
	if len(shortages) == 0 {
		o.state = StateAllAvailable
	} else {
		o.state = StatePartiallyUnavailable
	}
	o.mu.Unlock()

	return shortages, nil
}

// PlaceOrder отправляет заказ на сервер. При ignoreAvailability заказ
// отправляется несмотря на найденные нехватки, сервер решает сам.
// Успех очищает корзину; неудача оставляет корзину нетронутой.
func (o *Orchestrator) PlaceOrder(ctx context.Context, ignoreAvailability bool) (model.Order, error) {
	storeID := o.cart.PickupStoreID()
	if storeID == 0 {
		o.setState(StateNoStoreSelected)
		return model.Order{}, ErrNoPickupStore
	}

	items := o.cart.Items()
	if len(items) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	req := model.CreateOrderRequest{
		PickupStoreID:      storeID,
		Lines:              make([]model.OrderLineRequest, 0, len(items)),
		IgnoreAvailability: ignoreAvailability,
	}
	for _, it := range items {
		req.Lines = append(req.Lines, model.OrderLineRequest{
			ProductID: it.Product.ProductID,
			Quantity:  it.Quantity,
		})
	}

	// Заведомо некорректный заказ не уходит на сервер и не трогает корзину.
	if err := validation.ValidateOrder(req); err != nil {
		return model.Order{}, err
	}

	o.setState(StateOrderSubmitting)

	order, err := o.catalog.CreateOrder(ctx, req)
	if err != nil {
		msg := err.Error()
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}

		o.mu.Lock()
		o.state = StateOrderFailed
		o.failure = msg
		o.mu.Unlock()

		o.logger.Warn("place order", zap.Error(err))
		return model.Order{}, err
	}

	o.cart.ClearCart()

	o.mu.Lock()
	o.state = StateOrderPlaced
	o.lastOrder = order
	o.failure = ""
	o.shortages = nil
	o.mu.Unlock()

	o.logger.Info("order placed",
		zap.Int64("order_id", order.OrderID),
		zap.Int64("store_id", storeID),
	)
	return order, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}
