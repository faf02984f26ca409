// Package cart содержит персистентную корзину покупателя.
package cart

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/storage"
)

// Namespace задаёт пространство имён корзины в локальном хранилище.
// Независимо от сессии: выход из учётной записи корзину не очищает.
const Namespace = "cart-storage"

// Item представляет позицию корзины: снимок товара каталога на момент
// добавления плюс количество. Цена фиксируется при добавлении и не
// перечитывается из каталога.
type Item struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

type persistedState struct {
	Items         []Item `json:"items"`
	PickupStoreID int64  `json:"pickupStoreId"`
}

// Store хранит позиции корзины и выбранный магазин самовывоза.
// Инвариант: не более одной позиции на товар, количество всегда >= 1.
type Store struct {
	mu            sync.RWMutex
	items         []Item
	pickupStoreID int64
	storage       storage.Storage
	logger        *zap.Logger
}

// NewStore создаёт корзину и восстанавливает содержимое из persistence.
func NewStore(st storage.Storage, logger *zap.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
	}

	var saved persistedState
	if err := st.Load(Namespace, &saved); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("restore cart state", zap.Error(err))
		}
		return s
	}

	s.items = saved.Items
	s.pickupStoreID = saved.PickupStoreID
	return s
}

// AddItem добавляет товар в корзину. Если позиция для этого товара уже есть,
// количества складываются. Неположительное количество не изменяет корзину.
func (s *Store) AddItem(product model.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ProductID == product.ProductID {
			s.items[i].Quantity += quantity
			s.persistLocked()
			return
		}
	}

	s.items = append(s.items, Item{Product: product, Quantity: quantity})
	s.persistLocked()
}

// RemoveItem удаляет позицию товара; отсутствующий товар — no-op.
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	s.persistLocked()
}

// UpdateQuantity заменяет количество позиции абсолютным значением.
// Количество <= 0 эквивалентно удалению позиции.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		s.persistLocked()
		return
	}

	for i := range s.items {
		if s.items[i].Product.ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persistLocked()
}

// SetPickupStore запоминает выбранный магазин самовывоза.
// Существование магазина и его запасы не проверяются.
func (s *Store) SetPickupStore(storeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickupStoreID = storeID
	s.persistLocked()
}

// ClearCart очищает все позиции и сбрасывает выбранный магазин.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.pickupStoreID = 0
	s.persistLocked()
}

// Items возвращает копию позиций корзины.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item возвращает позицию по идентификатору товара.
func (s *Store) Item(productID int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.Product.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// PickupStoreID возвращает выбранный магазин самовывоза, 0 если не выбран.
func (s *Store) PickupStoreID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pickupStoreID
}

// ItemCount возвращает суммарное количество единиц товара в корзине.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalAmount возвращает сумму корзины по ценам на момент добавления, без скидок.
func (s *Store) TotalAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Product.BasePrice * float64(it.Quantity)
	}
	return total
}

func (s *Store) removeLocked(productID int64) {
	for i := range s.items {
		if s.items[i].Product.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) persistLocked() {
	state := persistedState{
		Items:         s.items,
		PickupStoreID: s.pickupStoreID,
	}
	if err := s.storage.Save(Namespace, state); err != nil {
		s.logger.Warn("persist cart state", zap.Error(err))
	}
}
