// Package service реализует типизированный слой чтений и мутаций поверх
// клиента API и кэша запросов.
//
// Каждое чтение живёт под составным ключом кэша со своим окном устаревания;
// каждая мутация по декларативной таблице инвалидирует затронутые семейства
// ключей до того, как её завершение станет видно вызывающему.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/api"
	"github.com/pwrstore/storeclient/internal/cache"
	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/validation"
)

// ErrInvalidPrice возвращается мутациями товара при цене вне допустимого
// диапазона, без обращения к серверу.
var ErrInvalidPrice = errors.New("product price out of range")

// Окна устаревания по семействам ресурсов: справочные данные терпят долгое
// окно, операционные — короткое, каталог и заказы перечитываются всегда.
const (
	staleReference   = 5 * time.Minute
	staleOperational = 2 * time.Minute
	staleEmployees   = 30 * time.Second
	staleNone        = time.Duration(0)
)

// Mutation обозначает вид мутации для таблицы инвалидации.
type Mutation string

const (
	MutationCreateOrder          Mutation = "create-order"
	MutationUpdateOrderStatus    Mutation = "update-order-status"
	MutationCreateDelivery       Mutation = "create-delivery"
	MutationUpdateDeliveryStatus Mutation = "update-delivery-status"
	MutationCreateAutoDelivery   Mutation = "create-auto-delivery"
	MutationCreateReturn         Mutation = "create-return"
	MutationUpdateReturnStatus   Mutation = "update-return-status"
	MutationCreateTransaction    Mutation = "create-transaction"
	MutationChangeEmployee       Mutation = "change-employee"
	MutationChangeProduct        Mutation = "change-product"
	MutationChangeCategory       Mutation = "change-category"
)

// invalidations сопоставляет мутациям префиксы семейств ключей, которые они
// делают недостоверными. Семейства с ключом-идентификатором несут
// завершающий разделитель, чтобы не задевать соседние имена.
var invalidations = map[Mutation][]string{
	MutationCreateOrder:          {"my-orders"},
	MutationUpdateOrderStatus:    {"orders", "order|", "my-orders"},
	MutationCreateDelivery:       {"deliveries", "suggestions"},
	MutationUpdateDeliveryStatus: {"deliveries", "delivery|"},
	MutationCreateAutoDelivery:   {"deliveries", "suggestions", "inventory|", "low-stock|"},
	MutationCreateReturn:         {"returns", "return|"},
	MutationUpdateReturnStatus:   {"returns", "return|"},
	MutationCreateTransaction:    {"transactions"},
	MutationChangeEmployee:       {"employees"},
	MutationChangeProduct:        {"products", "product|"},
	MutationChangeCategory:       {"categories", "products"},
}

// DashboardStats содержит сводные показатели для панели сотрудника.
type DashboardStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	ActiveStores    int     `json:"activeStores"`
}

// Service связывает клиент API с кэшем запросов.
type Service struct {
	client *api.Client
	cache  *cache.Cache
	logger *zap.Logger
}

// NewService создаёт слой чтений и мутаций над указанным клиентом.
func NewService(client *api.Client, c *cache.Cache, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cache:  c,
		logger: logger,
	}
}

// invalidate применяет таблицу инвалидации для успешной мутации.
func (s *Service) invalidate(m Mutation) {
	prefixes, ok := invalidations[m]
	if !ok {
		return
	}
	s.cache.Invalidate(prefixes...)
	s.logger.Debug("cache invalidated",
		zap.String("mutation", string(m)),
		zap.Strings("prefixes", prefixes))
}

// --- Каталог ---

// Products возвращает страницу каталога. Каталог не кэшируется.
func (s *Service) Products(ctx context.Context, params api.ProductsParams) (model.Page[model.Product], error) {
	key := cache.Key("products", params.Page, params.Size, params.Query, params.CategoryID)
	return cache.GetTyped(ctx, s.cache, key, staleNone, func(ctx context.Context) (model.Page[model.Product], error) {
		return s.client.Products(ctx, params)
	})
}

// Product возвращает товар по идентификатору.
func (s *Service) Product(ctx context.Context, id int64) (model.Product, error) {
	key := cache.Key("product", id)
	return cache.GetTyped(ctx, s.cache, key, staleNone, func(ctx context.Context) (model.Product, error) {
		return s.client.Product(ctx, id)
	})
}

// ProductAvailability возвращает наличие товара по магазинам. Снимок наличия
// живёт только внутри текущей попытки оформления и не кэшируется.
func (s *Service) ProductAvailability(ctx context.Context, id int64) (model.ProductStoreAvailability, error) {
	return s.client.ProductAvailability(ctx, id)
}

// Categories возвращает все категории товаров.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	return cache.GetTyped(ctx, s.cache, cache.Key("categories"), staleReference, func(ctx context.Context) ([]model.Category, error) {
		return s.client.Categories(ctx)
	})
}

// CreateProduct создаёт товар и инвалидирует каталог.
// Некорректная цена отклоняется до обращения к серверу.
func (s *Service) CreateProduct(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	if !validation.ValidPrice(req.BasePrice) {
		return model.Product{}, ErrInvalidPrice
	}
	p, err := s.client.CreateProduct(ctx, req)
	if err != nil {
		return model.Product{}, err
	}
	s.invalidate(MutationChangeProduct)
	return p, nil
}

// UpdateProduct изменяет товар и инвалидирует каталог.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req model.CreateProductRequest) (model.Product, error) {
	if !validation.ValidPrice(req.BasePrice) {
		return model.Product{}, ErrInvalidPrice
	}
	p, err := s.client.UpdateProduct(ctx, id, req)
	if err != nil {
		return model.Product{}, err
	}
	s.invalidate(MutationChangeProduct)
	return p, nil
}

// DeleteProduct удаляет товар и инвалидирует каталог.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(MutationChangeProduct)
	return nil
}

// CreateCategory создаёт категорию.
func (s *Service) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	c, err := s.client.CreateCategory(ctx, req)
	if err != nil {
		return model.Category{}, err
	}
	s.invalidate(MutationChangeCategory)
	return c, nil
}

// UpdateCategory изменяет категорию.
func (s *Service) UpdateCategory(ctx context.Context, id int64, req model.CreateCategoryRequest) (model.Category, error) {
	c, err := s.client.UpdateCategory(ctx, id, req)
	if err != nil {
		return model.Category{}, err
	}
	s.invalidate(MutationChangeCategory)
	return c, nil
}

// DeleteCategory удаляет категорию.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(MutationChangeCategory)
	return nil
}

// --- Магазины и инвентарь ---

// Stores возвращает страницу магазинов сети.
func (s *Service) Stores(ctx context.Context, params *model.PageParams) (model.Page[model.StoreInfo], error) {
	key := pagedKey("stores", params)
	return cache.GetTyped(ctx, s.cache, key, staleReference, func(ctx context.Context) (model.Page[model.StoreInfo], error) {
		return s.client.Stores(ctx, params)
	})
}

// Store возвращает магазин по идентификатору.
func (s *Service) Store(ctx context.Context, id int64) (model.StoreInfo, error) {
	key := cache.Key("store", id)
	return cache.GetTyped(ctx, s.cache, key, staleReference, func(ctx context.Context) (model.StoreInfo, error) {
		return s.client.Store(ctx, id)
	})
}

// StoreInventory возвращает инвентарь магазина.
func (s *Service) StoreInventory(ctx context.Context, id int64) ([]model.StoreInventoryItem, error) {
	key := cache.Key("inventory", id)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) ([]model.StoreInventoryItem, error) {
		return s.client.StoreInventory(ctx, id)
	})
}

// LowStock возвращает дефицитные позиции магазина.
func (s *Service) LowStock(ctx context.Context, id int64) ([]model.LowStockItem, error) {
	key := cache.Key("low-stock", id)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) ([]model.LowStockItem, error) {
		return s.client.LowStock(ctx, id)
	})
}

// CreateAutoDelivery создаёт автопоставку и инвалидирует связанные семейства.
func (s *Service) CreateAutoDelivery(ctx context.Context, storeID int64) (model.Delivery, error) {
	d, err := s.client.CreateAutoDelivery(ctx, storeID)
	if err != nil {
		return model.Delivery{}, err
	}
	s.invalidate(MutationCreateAutoDelivery)
	return d, nil
}

// --- Заказы ---

// MyOrders возвращает заказы текущего покупателя.
func (s *Service) MyOrders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error) {
	key := pagedKey("my-orders", params)
	return cache.GetTyped(ctx, s.cache, key, staleNone, func(ctx context.Context) (model.Page[model.Order], error) {
		return s.client.MyOrders(ctx, params)
	})
}

// Orders возвращает все заказы (для сотрудников).
func (s *Service) Orders(ctx context.Context, params *model.PageParams) (model.Page[model.Order], error) {
	key := pagedKey("orders", params)
	return cache.GetTyped(ctx, s.cache, key, staleNone, func(ctx context.Context) (model.Page[model.Order], error) {
		return s.client.Orders(ctx, params)
	})
}

// Order возвращает заказ по идентификатору.
func (s *Service) Order(ctx context.Context, id int64) (model.Order, error) {
	key := cache.Key("order", id)
	return cache.GetTyped(ctx, s.cache, key, staleNone, func(ctx context.Context) (model.Order, error) {
		return s.client.Order(ctx, id)
	})
}

// CheckOrderAvailability проверяет наличие позиций заказа на сервере.
func (s *Service) CheckOrderAvailability(ctx context.Context, req model.CreateOrderRequest) (model.OrderAvailability, error) {
	return s.client.CheckOrderAvailability(ctx, req)
}

// CreateOrder оформляет заказ и инвалидирует список заказов покупателя.
func (s *Service) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	o, err := s.client.CreateOrder(ctx, req)
	if err != nil {
		return model.Order{}, err
	}
	s.invalidate(MutationCreateOrder)
	return o, nil
}

// UpdateOrderStatus меняет статус заказа и инвалидирует связанные семейства.
func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	o, err := s.client.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return model.Order{}, err
	}
	s.invalidate(MutationUpdateOrderStatus)
	return o, nil
}

// --- Поставки ---

// Deliveries возвращает страницу поставок.
func (s *Service) Deliveries(ctx context.Context, params *model.PageParams) (model.Page[model.Delivery], error) {
	key := pagedKey("deliveries", params)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) (model.Page[model.Delivery], error) {
		return s.client.Deliveries(ctx, params)
	})
}

// Delivery возвращает поставку по идентификатору.
func (s *Service) Delivery(ctx context.Context, id int64) (model.Delivery, error) {
	key := cache.Key("delivery", id)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) (model.Delivery, error) {
		return s.client.Delivery(ctx, id)
	})
}

// RestockSuggestions возвращает рекомендации пополнения запасов.
func (s *Service) RestockSuggestions(ctx context.Context) ([]model.RestockSuggestion, error) {
	return cache.GetTyped(ctx, s.cache, cache.Key("suggestions"), staleOperational, func(ctx context.Context) ([]model.RestockSuggestion, error) {
		return s.client.RestockSuggestions(ctx)
	})
}

// CreateDelivery создаёт поставку и инвалидирует список поставок.
func (s *Service) CreateDelivery(ctx context.Context, req model.CreateDeliveryRequest) (model.Delivery, error) {
	d, err := s.client.CreateDelivery(ctx, req)
	if err != nil {
		return model.Delivery{}, err
	}
	s.invalidate(MutationCreateDelivery)
	return d, nil
}

// UpdateDeliveryStatus меняет статус поставки.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, id int64, status model.DeliveryStatus) (model.Delivery, error) {
	d, err := s.client.UpdateDeliveryStatus(ctx, id, status)
	if err != nil {
		return model.Delivery{}, err
	}
	s.invalidate(MutationUpdateDeliveryStatus)
	return d, nil
}

// --- Возвраты ---

// Returns возвращает страницу возвратов.
func (s *Service) Returns(ctx context.Context, params *model.PageParams) (model.Page[model.Return], error) {
	key := pagedKey("returns", params)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) (model.Page[model.Return], error) {
		return s.client.Returns(ctx, params)
	})
}

// Return возвращает возврат по идентификатору.
func (s *Service) Return(ctx context.Context, id int64) (model.Return, error) {
	key := cache.Key("return", id)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) (model.Return, error) {
		return s.client.Return(ctx, id)
	})
}

// CreateReturn оформляет возврат.
func (s *Service) CreateReturn(ctx context.Context, req model.CreateReturnRequest) (model.Return, error) {
	r, err := s.client.CreateReturn(ctx, req)
	if err != nil {
		return model.Return{}, err
	}
	s.invalidate(MutationCreateReturn)
	return r, nil
}

// UpdateReturnStatus меняет статус возврата.
func (s *Service) UpdateReturnStatus(ctx context.Context, id int64, status model.ReturnStatus) (model.Return, error) {
	r, err := s.client.UpdateReturnStatus(ctx, id, status)
	if err != nil {
		return model.Return{}, err
	}
	s.invalidate(MutationUpdateReturnStatus)
	return r, nil
}

// --- Кассовые операции ---

// Transactions возвращает страницу кассовых операций.
func (s *Service) Transactions(ctx context.Context, params *model.PageParams) (model.Page[model.Transaction], error) {
	key := pagedKey("transactions", params)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) (model.Page[model.Transaction], error) {
		return s.client.Transactions(ctx, params)
	})
}

// Transaction возвращает кассовую операцию по идентификатору.
func (s *Service) Transaction(ctx context.Context, id int64) (model.Transaction, error) {
	key := cache.Key("transaction", id)
	return cache.GetTyped(ctx, s.cache, key, staleOperational, func(ctx context.Context) (model.Transaction, error) {
		return s.client.Transaction(ctx, id)
	})
}

// CreateTransaction регистрирует кассовую операцию.
func (s *Service) CreateTransaction(ctx context.Context, req model.CreateTransactionRequest) (model.Transaction, error) {
	t, err := s.client.CreateTransaction(ctx, req)
	if err != nil {
		return model.Transaction{}, err
	}
	s.invalidate(MutationCreateTransaction)
	return t, nil
}

// --- Сотрудники ---

// Employees возвращает страницу сотрудников.
func (s *Service) Employees(ctx context.Context, params *model.PageParams) (model.Page[model.Employee], error) {
	key := pagedKey("employees", params)
	return cache.GetTyped(ctx, s.cache, key, staleEmployees, func(ctx context.Context) (model.Page[model.Employee], error) {
		return s.client.Employees(ctx, params)
	})
}

// Employee возвращает сотрудника по идентификатору.
func (s *Service) Employee(ctx context.Context, id int64) (model.Employee, error) {
	key := cache.Key("employee", id)
	return cache.GetTyped(ctx, s.cache, key, staleEmployees, func(ctx context.Context) (model.Employee, error) {
		return s.client.Employee(ctx, id)
	})
}

// CreateEmployee создаёт сотрудника.
func (s *Service) CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) (model.Employee, error) {
	e, err := s.client.CreateEmployee(ctx, req)
	if err != nil {
		return model.Employee{}, err
	}
	s.invalidate(MutationChangeEmployee)
	return e, nil
}

// UpdateEmployee изменяет сотрудника.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, req model.UpdateEmployeeRequest) (model.Employee, error) {
	e, err := s.client.UpdateEmployee(ctx, id, req)
	if err != nil {
		return model.Employee{}, err
	}
	s.invalidate(MutationChangeEmployee)
	return e, nil
}

// ToggleEmployeeStatus переключает активность сотрудника.
func (s *Service) ToggleEmployeeStatus(ctx context.Context, id int64) (model.Employee, error) {
	e, err := s.client.ToggleEmployeeStatus(ctx, id)
	if err != nil {
		return model.Employee{}, err
	}
	s.invalidate(MutationChangeEmployee)
	return e, nil
}

// DeleteEmployee удаляет сотрудника.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.client.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.invalidate(MutationChangeEmployee)
	return nil
}

// --- Сводка ---

// DashboardStats собирает сводку панели сотрудника композицией обычных
// чтений: каждый ресурс свеж в пределах собственного окна, межресурсная
// согласованность не гарантируется.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	orders, err := s.Orders(ctx, &model.PageParams{Page: 0, Size: 100})
	if err != nil {
		return DashboardStats{}, err
	}

	stores, err := s.Stores(ctx, &model.PageParams{Page: 0, Size: 100})
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalOrders:  len(orders.Content),
		ActiveStores: stores.TotalElements,
	}
	for _, o := range orders.Content {
		switch o.Status {
		case model.OrderStatusNew, model.OrderStatusInProgress:
			stats.PendingOrders++
		case model.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats, nil
}

func pagedKey(resource string, params *model.PageParams) string {
	if params == nil {
		return cache.Key(resource, 0, 20)
	}
	return cache.Key(resource, params.Page, params.Size)
}
