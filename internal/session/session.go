// Package session содержит персистентное хранилище сессии аутентификации.
package session

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pwrstore/storeclient/internal/model"
	"github.com/pwrstore/storeclient/internal/storage"
)

// Namespace задаёт пространство имён сессии в локальном хранилище.
const Namespace = "auth-storage"

type persistedState struct {
	Token           string      `json:"token"`
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// Store хранит текущую сессию пользователя: токен, идентичность и роль.
// Все мутации синхронны и сразу сохраняются в локальное хранилище.
// У хранилища нет режимов отказа: ошибка сохранения логируется и не мешает
// мутации состояния в памяти.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *model.User
	storage storage.Storage
	logger  *zap.Logger
}

// NewStore создаёт хранилище сессии и восстанавливает состояние из persistence.
func NewStore(st storage.Storage, logger *zap.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
	}

	var saved persistedState
	if err := st.Load(Namespace, &saved); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("restore session state", zap.Error(err))
		}
		return s
	}

	if saved.IsAuthenticated && saved.Token != "" && saved.User != nil {
		s.token = saved.Token
		s.user = saved.User
	}
	return s
}

// Login сохраняет токен и данные пользователя из ответа сервера.
// Токен и сессия устанавливаются атомарно, под одной блокировкой.
func (s *Store) Login(resp model.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = resp.Token
	s.user = &model.User{
		Username: resp.Username,
		UserType: resp.UserType,
		Role:     resp.Role,
		StoreID:  resp.StoreID,
	}
	s.persistLocked()
}

// Logout очищает токен, сессию и её сохранённую копию. Всегда успешен.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	if err := s.storage.Clear(Namespace); err != nil {
		s.logger.Warn("clear session state", zap.Error(err))
	}
}

// Token возвращает текущий токен авторизации, пустую строку без сессии.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated сообщает, есть ли активная сессия с токеном.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Current возвращает данные текущего пользователя.
func (s *Store) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// IsCustomer сообщает, вошёл ли в систему покупатель.
func (s *Store) IsCustomer() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.UserType == model.UserTypeCustomer
}

// IsEmployee сообщает, вошёл ли в систему сотрудник.
func (s *Store) IsEmployee() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.UserType == model.UserTypeEmployee
}

// HasRole сообщает, имеет ли текущий пользователь указанную должность.
func (s *Store) HasRole(role model.EmployeeRole) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

func (s *Store) persistLocked() {
	state := persistedState{
		Token:           s.token,
		User:            s.user,
		IsAuthenticated: s.token != "" && s.user != nil,
	}
	if err := s.storage.Save(Namespace, state); err != nil {
		s.logger.Warn("persist session state", zap.Error(err))
	}
}
