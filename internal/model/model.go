// Package model содержит структуры данных REST API системы управления магазинами.
package model

import "fmt"

// UserType обозначает тип учётной записи пользователя.
type UserType string

const (
	UserTypeCustomer UserType = "CUSTOMER"
	UserTypeEmployee UserType = "EMPLOYEE"
)

// EmployeeRole описывает должность сотрудника магазина.
type EmployeeRole string

const (
	RoleManager     EmployeeRole = "KIEROWNIK"
	RoleSalesperson EmployeeRole = "SPRZEDAWCA"
	RoleWarehouse   EmployeeRole = "MAGAZYNIER"
)

// OrderStatus описывает статус заказа покупателя.
type OrderStatus string

const (
	OrderStatusNew            OrderStatus = "NOWE"
	OrderStatusInProgress     OrderStatus = "W_REALIZACJI"
	OrderStatusApproved       OrderStatus = "ZATWIERDZONY"
	OrderStatusCancelled      OrderStatus = "ANULOWANY"
	OrderStatusReadyForPickup OrderStatus = "GOTOWY_DO_ODBIORU"
	OrderStatusPickedUp       OrderStatus = "ODEBRANY"
	OrderStatusCompleted      OrderStatus = "ZREALIZOWANY"
)

// DeliveryStatus описывает статус поставки.
type DeliveryStatus string

const (
	DeliveryStatusInProgress DeliveryStatus = "W_TRAKCIE"
	DeliveryStatusCompleted  DeliveryStatus = "ZREALIZOWANA"
	DeliveryStatusCancelled  DeliveryStatus = "ANULOWANA"
)

// ReturnStatus описывает статус возврата товара.
type ReturnStatus string

const (
	ReturnStatusUnderReview ReturnStatus = "ROZPATRYWANY"
	ReturnStatusAccepted    ReturnStatus = "PRZYJETY"
	ReturnStatusRejected    ReturnStatus = "ODRZUCONY"
)

// AuthResponse описывает ответ сервера на успешную аутентификацию.
type AuthResponse struct {
	Token    string       `json:"token"`
	UserType UserType     `json:"userType"`
	Username string       `json:"username"`
	Role     EmployeeRole `json:"role,omitempty"`
	StoreID  int64        `json:"storeId,omitempty"`
}

// LoginRequest содержит учётные данные для входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterCustomerRequest содержит данные регистрации покупателя.
type RegisterCustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// User описывает аутентифицированного пользователя клиента.
type User struct {
	Username string       `json:"username"`
	UserType UserType     `json:"userType"`
	Role     EmployeeRole `json:"role,omitempty"`
	StoreID  int64        `json:"storeId,omitempty"`
}

// Product описывает товар каталога.
type Product struct {
	ProductID         int64   `json:"productId"`
	CategoryID        int64   `json:"categoryId"`
	CategoryName      string  `json:"categoryName"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	BasePrice         float64 `json:"basePrice"`
	LowStockThreshold int     `json:"lowStockThreshold,omitempty"`
	MinimumStock      int     `json:"minimumStock,omitempty"`
	IsActive          bool    `json:"isActive,omitempty"`
}

// CreateProductRequest содержит данные для создания или изменения товара.
type CreateProductRequest struct {
	CategoryID        int64   `json:"categoryId"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	BasePrice         float64 `json:"basePrice"`
	LowStockThreshold int     `json:"lowStockThreshold,omitempty"`
	MinimumStock      int     `json:"minimumStock,omitempty"`
}

// StoreAvailability описывает наличие товара в конкретном магазине.
type StoreAvailability struct {
	StoreID        int64  `json:"storeId"`
	StoreName      string `json:"storeName"`
	City           string `json:"city"`
	AvailableCount int    `json:"availableCount"`
}

// ProductStoreAvailability описывает наличие товара по всем магазинам.
// Ключ карты — строковый идентификатор магазина, как его отдаёт сервер.
type ProductStoreAvailability struct {
	ProductID         int64                        `json:"productId"`
	ProductName       string                       `json:"productName"`
	StoreAvailability map[string]StoreAvailability `json:"storeAvailability"`
}

// Category описывает категорию товаров.
type Category struct {
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategoryRequest содержит данные для создания категории.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// StoreInfo описывает магазин сети.
type StoreInfo struct {
	StoreID       int64  `json:"storeId"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PhoneNumber   string `json:"phoneNumber"`
	EmployeeCount int    `json:"employeeCount"`
	ProductCount  int    `json:"productCount"`
}

// StoreInventoryItem описывает позицию инвентаря магазина.
type StoreInventoryItem struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	CategoryName   string `json:"categoryName"`
	AvailableCount int    `json:"availableCount"`
	OnDisplayCount int    `json:"onDisplayCount"`
	ReservedCount  int    `json:"reservedCount"`
	TotalCount     int    `json:"totalCount"`
}

// LowStockItem описывает товар с запасом ниже порогового значения.
type LowStockItem struct {
	ProductID         int64  `json:"productId"`
	ProductName       string `json:"productName"`
	StoreID           int64  `json:"storeId"`
	StoreName         string `json:"storeName"`
	CurrentStock      int    `json:"currentStock"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	MinimumStock      int    `json:"minimumStock"`
	QuantityNeeded    int    `json:"quantityNeeded"`
}

// Order описывает заказ покупателя.
type Order struct {
	OrderID         int64       `json:"orderId"`
	CustomerID      int64       `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	PickupStoreID   int64       `json:"pickupStoreId"`
	PickupStoreName string      `json:"pickupStoreName"`
	PickupStoreCity string      `json:"pickupStoreCity"`
	OrderDate       string      `json:"orderDate"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	HasShortage     bool        `json:"hasShortage,omitempty"`
	Lines           []OrderLine `json:"lines"`
}

// OrderLine описывает строку заказа.
type OrderLine struct {
	OrderLineID  int64   `json:"orderLineId"`
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"priceAtOrder"`
	LineTotal    float64 `json:"lineTotal"`
}

// OrderLineRequest описывает строку создаваемого заказа.
type OrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest содержит данные для оформления заказа.
type CreateOrderRequest struct {
	PickupStoreID      int64              `json:"pickupStoreId"`
	Lines              []OrderLineRequest `json:"lines"`
	IgnoreAvailability bool               `json:"ignoreAvailability,omitempty"`
}

// ProductAvailability описывает результат проверки наличия одной позиции заказа.
type ProductAvailability struct {
	ProductID              int64                 `json:"productId"`
	ProductName            string                `json:"productName"`
	RequestedQuantity      int                   `json:"requestedQuantity"`
	AvailableInPickupStore int                   `json:"availableInPickupStore"`
	AlternativeStores      map[string]StoreStock `json:"alternativeStores"`
	Available              bool                  `json:"available"`
}

// StoreStock описывает запас товара в альтернативном магазине.
type StoreStock struct {
	StoreID           int64  `json:"storeId"`
	StoreName         string `json:"storeName"`
	City              string `json:"city"`
	AvailableQuantity int    `json:"availableQuantity"`
}

// OrderAvailability описывает серверный ответ проверки наличия всего заказа.
type OrderAvailability struct {
	Products     []ProductAvailability `json:"products"`
	AllAvailable bool                  `json:"allAvailable"`
	Message      string                `json:"message"`
}

// Delivery описывает поставку товара в магазин.
type Delivery struct {
	DeliveryID   int64          `json:"deliveryId"`
	SupplierName string         `json:"supplierName"`
	DeliveryDate string         `json:"deliveryDate"`
	Status       DeliveryStatus `json:"status"`
	Lines        []DeliveryLine `json:"lines"`
}

// DeliveryLine описывает строку поставки.
type DeliveryLine struct {
	DeliveryLineID int64   `json:"deliveryLineId"`
	ProductID      int64   `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       int     `json:"quantity"`
	PurchasePrice  float64 `json:"purchasePrice"`
	TotalPrice     float64 `json:"totalPrice"`
}

// DeliveryLineRequest описывает строку создаваемой поставки.
type DeliveryLineRequest struct {
	ProductID     int64   `json:"productId"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	StoreID       int64   `json:"storeId,omitempty"`
}

// CreateDeliveryRequest содержит данные для создания поставки.
type CreateDeliveryRequest struct {
	SupplierName string                `json:"supplierName"`
	DeliveryDate string                `json:"deliveryDate"`
	Lines        []DeliveryLineRequest `json:"lines"`
}

// RestockSuggestion описывает рекомендацию пополнения запасов магазина.
type RestockSuggestion struct {
	StoreID        int64            `json:"storeId"`
	StoreName      string           `json:"storeName"`
	StoreCity      string           `json:"storeCity"`
	NeededProducts []ProductRequest `json:"neededProducts"`
}

// ProductRequest описывает потребность в товаре для пополнения.
type ProductRequest struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	QuantityNeeded int    `json:"quantityNeeded"`
	CurrentStock   int    `json:"currentStock"`
}

// Transaction описывает кассовую операцию магазина.
type Transaction struct {
	TransactionID   int64             `json:"transactionId"`
	StoreID         int64             `json:"storeId"`
	StoreName       string            `json:"storeName"`
	EmployeeID      int64             `json:"employeeId,omitempty"`
	EmployeeName    string            `json:"employeeName,omitempty"`
	CustomerID      int64             `json:"customerId,omitempty"`
	CustomerName    string            `json:"customerName,omitempty"`
	TransactionDate string            `json:"transactionDate"`
	TotalAmount     float64           `json:"totalAmount"`
	TransactionType string            `json:"transactionType"`
	Items           []TransactionItem `json:"items"`
}

// TransactionItem описывает позицию кассовой операции.
type TransactionItem struct {
	TransactionItemID int64   `json:"transactionItemId"`
	ItemID            int64   `json:"itemId"`
	ProductID         int64   `json:"productId"`
	ProductName       string  `json:"productName"`
	Price             float64 `json:"price"`
}

// CreateTransactionRequest содержит данные для регистрации кассовой операции.
type CreateTransactionRequest struct {
	StoreID         int64   `json:"storeId"`
	CustomerID      int64   `json:"customerId,omitempty"`
	TransactionType string  `json:"transactionType"`
	ItemIDs         []int64 `json:"itemIds"`
}

// Return описывает возврат товара покупателем.
type Return struct {
	ReturnID      int64        `json:"returnId"`
	TransactionID int64        `json:"transactionId"`
	ReturnDate    string       `json:"returnDate"`
	Reason        string       `json:"reason"`
	Status        ReturnStatus `json:"status"`
	Items         []ReturnItem `json:"items"`
}

// ReturnItem описывает позицию возврата.
type ReturnItem struct {
	ReturnItemID   int64  `json:"returnItemId"`
	ItemID         int64  `json:"itemId"`
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	ConditionCheck string `json:"conditionCheck"`
}

// CreateReturnRequest содержит данные для оформления возврата.
type CreateReturnRequest struct {
	TransactionID int64   `json:"transactionId"`
	Reason        string  `json:"reason"`
	ItemIDs       []int64 `json:"itemIds"`
}

// Employee описывает сотрудника сети магазинов.
type Employee struct {
	EmployeeID int64  `json:"employeeId"`
	StoreID    int64  `json:"storeId"`
	StoreName  string `json:"storeName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Position   string `json:"position"`
	Login      string `json:"login"`
	IsActive   bool   `json:"isActive"`
}

// CreateEmployeeRequest содержит данные для создания сотрудника.
type CreateEmployeeRequest struct {
	StoreID   int64  `json:"storeId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
	Login     string `json:"login"`
	Password  string `json:"password"`
}

// UpdateEmployeeRequest содержит изменяемые поля сотрудника.
type UpdateEmployeeRequest struct {
	StoreID   int64  `json:"storeId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Position  string `json:"position,omitempty"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// Page представляет стандартный конверт пагинации серверных списков.
// Отдельные эндпоинты (категории, инвентарь, рекомендации пополнения)
// возвращают простой массив без конверта — такие ответы нормализуются
// типизированными методами пакета api.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// PageParams содержит параметры постраничного запроса.
type PageParams struct {
	Page int
	Size int
}

// APIError описывает стандартный конверт ошибки REST API.
type APIError struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	ErrorText string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// Error реализует интерфейс error для конверта ошибки сервера.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.ErrorText)
}
