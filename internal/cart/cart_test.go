package cart

import (
	"testing"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/storage"
)

func newTestCart(t *testing.T) (*Store, storage.Storage) {
	t.Helper()
	fs, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage error: %v", err)
	}
	return NewStore(fs, zap.NewNop()), fs
}

func product(id int64, price float64) model.Product {
	return model.Product{ProductID: id, Name: "product", BasePrice: price}
}

func TestAddItemMergesByProduct(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10), 2)
	s.AddItem(product(1, 10), 3)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", items[0].Quantity)
	}
	if got := s.TotalAmount(); got != 50 {
		t.Fatalf("TotalAmount = %v, want 50", got)
	}
}

func TestAddItemNonPositiveIsNoop(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10), 0)
	s.AddItem(product(1, 10), -2)

	if len(s.Items()) != 0 {
		t.Fatalf("non-positive add must not create a line")
	}

	s.AddItem(product(1, 10), 2)
	s.AddItem(product(1, 10), -1)

	it, ok := s.Item(1)
	if !ok || it.Quantity != 2 {
		t.Fatalf("item = %+v, %v; want quantity 2 untouched", it, ok)
	}
}

func TestUpdateQuantityReplacesOrRemoves(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10), 2)
	s.UpdateQuantity(1, 7)

	it, ok := s.Item(1)
	if !ok || it.Quantity != 7 {
		t.Fatalf("quantity = %d, want replacement to 7", it.Quantity)
	}

	s.UpdateQuantity(1, 0)
	if _, ok := s.Item(1); ok {
		t.Fatalf("quantity <= 0 must remove the line")
	}

	s.UpdateQuantity(1, -5)
	if len(s.Items()) != 0 {
		t.Fatalf("update of absent line must be no-op")
	}
}

func TestRemoveItem(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10), 1)
	s.AddItem(product(2, 20), 1)

	s.RemoveItem(1)
	s.RemoveItem(99)

	items := s.Items()
	if len(items) != 1 || items[0].Product.ProductID != 2 {
		t.Fatalf("items = %+v, want only product 2", items)
	}
}

func TestTotalsAndCount(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10.5), 2)
	s.AddItem(product(2, 3), 4)

	if got := s.ItemCount(); got != 6 {
		t.Fatalf("ItemCount = %d, want 6", got)
	}
	if got := s.TotalAmount(); got != 33 {
		t.Fatalf("TotalAmount = %v, want 33", got)
	}

	s.RemoveItem(2)
	if got := s.TotalAmount(); got != 21 {
		t.Fatalf("TotalAmount after removal = %v, want 21", got)
	}
}

func TestClearCartResetsPickupStore(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10), 1)
	s.SetPickupStore(5)

	s.ClearCart()

	if len(s.Items()) != 0 {
		t.Fatalf("items must be empty after clear")
	}
	if s.PickupStoreID() != 0 {
		t.Fatalf("pickup store must be reset after clear")
	}
}

func TestCartSurvivesRestart(t *testing.T) {
	s, fs := newTestCart(t)

	s.AddItem(product(1, 10), 2)
	s.SetPickupStore(3)

	restored := NewStore(fs, zap.NewNop())

	it, ok := restored.Item(1)
	if !ok || it.Quantity != 2 {
		t.Fatalf("restored item = %+v, %v; want quantity 2", it, ok)
	}
	if restored.PickupStoreID() != 3 {
		t.Fatalf("restored pickup store = %d, want 3", restored.PickupStoreID())
	}
}

func TestPriceSnapshotLockedAtAddTime(t *testing.T) {
	s, _ := newTestCart(t)

	s.AddItem(product(1, 10), 1)
	// Цена из повторного добавления не заменяет снимок первой позиции.
	s.AddItem(product(1, 99), 1)

	if got := s.TotalAmount(); got != 20 {
		t.Fatalf("TotalAmount = %v, want 20 (price locked at add time)", got)
	}
}
