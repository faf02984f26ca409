package session

import (
	"testing"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/storage"
)

func newTestStore(t *testing.T) (*Store, storage.Storage) {
	t.Helper()
	fs, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage error: %v", err)
	}
	return NewStore(fs, zap.NewNop()), fs
}

func TestLoginLogoutAtomicity(t *testing.T) {
	s, _ := newTestStore(t)

	if s.IsAuthenticated() || s.IsCustomer() || s.IsEmployee() {
		t.Fatalf("fresh store must be unauthenticated")
	}

	s.Login(model.AuthResponse{
		Token:    "jwt-token",
		UserType: model.UserTypeCustomer,
		Username: "jan",
	})

	if !s.IsAuthenticated() {
		t.Fatalf("IsAuthenticated = false after login")
	}
	if !s.IsCustomer() || s.IsEmployee() {
		t.Fatalf("predicates must reflect userType CUSTOMER")
	}
	if s.Token() != "jwt-token" {
		t.Fatalf("Token = %q, want jwt-token", s.Token())
	}

	s.Logout()

	if s.IsAuthenticated() || s.IsCustomer() || s.IsEmployee() {
		t.Fatalf("all predicates must be false after logout")
	}
	if s.Token() != "" {
		t.Fatalf("Token must be empty after logout")
	}
}

func TestEmployeeRole(t *testing.T) {
	s, _ := newTestStore(t)

	s.Login(model.AuthResponse{
		Token:    "t",
		UserType: model.UserTypeEmployee,
		Username: "anna",
		Role:     model.RoleManager,
		StoreID:  7,
	})

	if !s.IsEmployee() || s.IsCustomer() {
		t.Fatalf("predicates must reflect userType EMPLOYEE")
	}
	if !s.HasRole(model.RoleManager) {
		t.Fatalf("HasRole(KIEROWNIK) = false")
	}
	if s.HasRole(model.RoleWarehouse) {
		t.Fatalf("HasRole(MAGAZYNIER) must be false")
	}

	u, ok := s.Current()
	if !ok || u.StoreID != 7 {
		t.Fatalf("Current = %+v, %v; want storeId 7", u, ok)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	s, fs := newTestStore(t)

	s.Login(model.AuthResponse{
		Token:    "persisted",
		UserType: model.UserTypeCustomer,
		Username: "jan",
	})

	restored := NewStore(fs, zap.NewNop())
	if !restored.IsAuthenticated() {
		t.Fatalf("session must survive restart")
	}
	if restored.Token() != "persisted" {
		t.Fatalf("Token = %q, want persisted", restored.Token())
	}

	restored.Logout()

	again := NewStore(fs, zap.NewNop())
	if again.IsAuthenticated() {
		t.Fatalf("logout must clear persisted session")
	}
}

func TestHasRoleUnauthenticated(t *testing.T) {
	s, _ := newTestStore(t)

	if s.HasRole(model.RoleSalesperson) {
		t.Fatalf("HasRole must be false without session")
	}
}
