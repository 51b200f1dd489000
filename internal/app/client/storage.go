package client

import (
	"fmt"
	"sync"

	"quotekeeper/internal/domain/quote"
)

// Storage - локальное хранилище снапшота записей и мелких настроек.
// Снапшот всегда пишется целиком, частичных записей не бывает.
type Storage interface {
	SaveSnapshot(quotes []quote.Quote) error
	LoadSnapshot() ([]quote.Quote, error)
	SaveSelectedCategory(name string) error
	LoadSelectedCategory() (string, error)
	Close() error
}

// MemoryStorage - временное in-memory хранилище, запасной вариант
// когда SQLite недоступен
type MemoryStorage struct {
	mu       sync.RWMutex
	snapshot []quote.Quote
	category string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) SaveSnapshot(quotes []quote.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = make([]quote.Quote, len(quotes))
	copy(m.snapshot, quotes)
	return nil
}

func (m *MemoryStorage) LoadSnapshot() ([]quote.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return nil, nil
	}
	quotes := make([]quote.Quote, len(m.snapshot))
	copy(quotes, m.snapshot)
	return quotes, nil
}

func (m *MemoryStorage) SaveSelectedCategory(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.category = name
	return nil
}

func (m *MemoryStorage) LoadSelectedCategory() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.category, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// SessionState - состояние сеанса приложения: живет пока жив процесс
// и не переживает перезапуск, в отличие от снапшота и выбранной категории
type SessionState struct {
	mu         sync.RWMutex
	lastViewed *quote.Quote
}

func (s *SessionState) SetLastViewed(q quote.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastViewed = &q
}

func (s *SessionState) LastViewed() (quote.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastViewed == nil {
		return quote.Quote{}, false
	}
	return *s.lastViewed, true
}

var _ Storage = (*MemoryStorage)(nil)

func wrapStorage(op string, err error) error {
	return fmt.Errorf("storage %s: %w", op, err)
}
