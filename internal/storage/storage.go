// Package storage реализует локальное персистентное хранилище состояния клиента.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound возвращается, если для пространства имён нет сохранённого состояния.
var ErrNotFound = errors.New("state not found")

// Storage описывает контракт сохранения именованных блобов состояния.
// Каждое пространство имён живёт независимо: очистка одного не затрагивает другие.
type Storage interface {
	Load(namespace string, v any) error
	Save(namespace string, v any) error
	Clear(namespace string) error
}

// FileStorage хранит каждое пространство имён в отдельном JSON-файле
// внутри каталога состояния и переживает перезапуски клиента.
type FileStorage struct {
	dir string
}

// NewFileStorage создаёт хранилище в указанном каталоге, создавая его при необходимости.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Load читает сохранённое состояние пространства имён в v.
func (s *FileStorage) Load(namespace string, v any) error {
	data, err := os.ReadFile(s.path(namespace))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read state: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	return nil
}

// Save записывает состояние пространства имён атомарно, через переименование
// временного файла, чтобы прерванная запись не повредила прежнее состояние.
func (s *FileStorage) Save(namespace string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path(namespace) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	if err := os.Rename(tmp, s.path(namespace)); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Clear удаляет сохранённое состояние пространства имён.
func (s *FileStorage) Clear(namespace string) error {
	if err := os.Remove(s.path(namespace)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state: %w", err)
	}
	return nil
}

func (s *FileStorage) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}
