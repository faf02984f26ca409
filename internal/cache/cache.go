// Package cache реализует кэш запросов с окнами устаревания и инвалидацией
// по семействам ключей.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key собирает ключ кэша из имени ресурса и параметров запроса.
func Key(resource string, params ...any) string {
	if len(params) == 0 {
		return resource
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, resource)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, "|")
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache хранит результаты чтений под составными ключами. Чтение в пределах
// окна устаревания отдаёт кэшированное значение без обращения к сети;
// конкурентные чтения одного ключа объединяются в один запрос.
//
// Инвалидация упорядочена относительно текущих запросов: чтение, начатое
// после инвалидации, не присоединяется к запросу, стартовавшему до неё,
// а результат такого запроса не записывается в кэш.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	gens    map[string]uint64
	// Счётчик, не множество: отцепленный от singleflight запрос может
	// завершаться одновременно с пришедшим ему на смену.
	inflight map[string]int
	group    singleflight.Group
	now      func() time.Time
}

// New создаёт пустой кэш.
func New() *Cache {
	return &Cache{
		entries:  make(map[string]entry),
		gens:     make(map[string]uint64),
		inflight: make(map[string]int),
		now:      time.Now,
	}
}

// Get возвращает кэшированное значение ключа, если оно свежее ttl, иначе
// выполняет fetch и обновляет запись. Ошибка fetch доставляется всем
// ожидающим этого запроса и не затирает прежнюю запись: следующее чтение
// повторит запрос заново.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.fresh(key, ttl); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Повторная проверка: запись могла обновиться, пока брали слот.
		if v, ok := c.fresh(key, ttl); ok {
			return v, nil
		}

		c.mu.Lock()
		c.inflight[key]++
		started := c.gens[key]
		c.mu.Unlock()

		v, err := fetch(ctx)

		c.mu.Lock()
		if c.inflight[key]--; c.inflight[key] == 0 {
			delete(c.inflight, key)
		}
		// Поколение сдвинулось — ключ инвалидирован во время запроса,
		// ответ уже недостоверен и в кэш не попадает.
		if err == nil && c.gens[key] == started {
			c.entries[key] = entry{value: v, fetchedAt: c.now()}
		}
		c.mu.Unlock()

		if err != nil {
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate помечает устаревшими все записи, чьи ключи начинаются с любого
// из указанных префиксов. Инвалидация грубая: затрагивается всё семейство,
// записи не правятся частично. Запросы семейства, находящиеся в полёте,
// отцепляются от singleflight, а их поколение сдвигается: последующие
// чтения стартуют заново и не увидят доинвалидационный ответ.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if matchesAny(key, prefixes) {
			delete(c.entries, key)
		}
	}
	for key := range c.inflight {
		if matchesAny(key, prefixes) {
			c.gens[key]++
			c.group.Forget(key)
		}
	}
}

func matchesAny(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// Len возвращает число записей в кэше.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) fresh(key string, ttl time.Duration) (any, bool) {
	if ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// GetTyped выполняет типизированное чтение через кэш.
func GetTyped[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
