package client

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"quotekeeper/internal/domain/quote"
)

const (
	slotSnapshot         = "quotes"
	slotSelectedCategory = "selected_category"
)

// SQLiteStorage хранит снапшот и настройки в одной key/value таблице.
// Снапшот лежит под фиксированным ключом как JSON-массив записей.
type SQLiteStorage struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLiteStorage(path string, log *slog.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{
		db:  db,
		log: log.With("component", "sqlite_storage"),
	}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStorage) setSlot(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return wrapStorage("write "+key, err)
	}
	return nil
}

func (s *SQLiteStorage) getSlot(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", wrapStorage("read "+key, err)
	}
	return value, nil
}

// SaveSnapshot перезаписывает весь набор записей одним значением
func (s *SQLiteStorage) SaveSnapshot(quotes []quote.Quote) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return wrapStorage("marshal snapshot", err)
	}
	return s.setSlot(slotSnapshot, string(data))
}

// LoadSnapshot читает снапшот. Отсутствующий или испорченный снапшот -
// не ошибка: возвращается пустой результат, вызывающий подставит seed.
// Каждый элемент проходит нормализацию, поэтому старые снапшоты без
// id/updatedAt/pending поднимаются до текущей схемы на месте.
func (s *SQLiteStorage) LoadSnapshot() ([]quote.Quote, error) {
	value, err := s.getSlot(slotSnapshot)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	var candidates []quote.Candidate
	if err := json.Unmarshal([]byte(value), &candidates); err != nil {
		s.log.Warn("снапшот не читается, возвращаем пустой набор", "error", err)
		return nil, nil
	}

	var quotes []quote.Quote
	for _, c := range candidates {
		q, err := quote.Normalize(c)
		if err != nil {
			s.log.Warn("запись снапшота отброшена при нормализации", "id", c.ID, "error", err)
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (s *SQLiteStorage) SaveSelectedCategory(name string) error {
	return s.setSlot(slotSelectedCategory, name)
}

func (s *SQLiteStorage) LoadSelectedCategory() (string, error) {
	return s.getSlot(slotSelectedCategory)
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ Storage = (*SQLiteStorage)(nil)
