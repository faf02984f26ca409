package storage

import (
	"errors"
	"testing"
)

type testState struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStorage_SaveLoad(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage error: %v", err)
	}

	in := testState{Name: "cart", Count: 3}
	if err := fs.Save("cart-storage", in); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	var out testState
	if err := fs.Load("cart-storage", &out); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if out != in {
		t.Fatalf("loaded state = %+v, want %+v", out, in)
	}
}

func TestFileStorage_LoadMissing(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage error: %v", err)
	}

	var out testState
	if err := fs.Load("absent", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load error = %v, want ErrNotFound", err)
	}
}

func TestFileStorage_NamespacesIndependent(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage error: %v", err)
	}

	if err := fs.Save("auth-storage", testState{Name: "auth"}); err != nil {
		t.Fatalf("Save auth error: %v", err)
	}
	if err := fs.Save("cart-storage", testState{Name: "cart"}); err != nil {
		t.Fatalf("Save cart error: %v", err)
	}

	if err := fs.Clear("auth-storage"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	var out testState
	if err := fs.Load("auth-storage", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("auth state should be gone, got err = %v", err)
	}
	if err := fs.Load("cart-storage", &out); err != nil {
		t.Fatalf("cart state must survive auth clear: %v", err)
	}
	if out.Name != "cart" {
		t.Fatalf("cart state = %+v, want name cart", out)
	}
}

func TestFileStorage_ClearMissingIsNoop(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage error: %v", err)
	}

	if err := fs.Clear("absent"); err != nil {
		t.Fatalf("Clear of absent namespace must succeed, got %v", err)
	}
}
