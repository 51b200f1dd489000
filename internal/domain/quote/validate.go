package quote

import (
	"strings"
	"time"
)

// Normalize проверяет кандидата и приводит его к валидной записи.
// Принимает только кандидатов с непустыми text и category после trim;
// все остальное отклоняется с ErrInvalidCandidate. Отсутствующие поля
// дозаполняются: свежий локальный id, текущее время, pending=false.
// Старые снапшоты без поля source получают его по префиксу id.
func Normalize(c Candidate) (Quote, error) {
	text := strings.TrimSpace(c.Text)
	category := strings.TrimSpace(c.Category)
	if text == "" || category == "" {
		return Quote{}, ErrInvalidCandidate
	}

	q := Quote{
		ID:        c.ID,
		Source:    c.Source,
		Text:      text,
		Category:  category,
		UpdatedAt: c.UpdatedAt,
		Pending:   c.Pending,
	}

	if q.ID == "" {
		q.ID = NewLocalID()
		q.Source = SourceLocal
	}
	if q.Source != SourceLocal && q.Source != SourceRemote {
		q.Source = sourceFromID(q.ID)
	}
	if q.UpdatedAt <= 0 {
		q.UpdatedAt = time.Now().UnixMilli()
	}

	return q, nil
}

// NewLocal создает новую локальную запись из пользовательского ввода.
// Запись сразу помечается pending - у нее еще нет серверного аналога.
func NewLocal(text, category string) (Quote, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)
	if text == "" || category == "" {
		return Quote{}, ErrInvalidCandidate
	}

	return Quote{
		ID:        NewLocalID(),
		Source:    SourceLocal,
		Text:      text,
		Category:  category,
		UpdatedAt: time.Now().UnixMilli(),
		Pending:   true,
	}, nil
}
