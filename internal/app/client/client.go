package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"quotekeeper/internal/app/client/config"
	"quotekeeper/internal/domain/quote"
)

// App владеет набором записей. Все мутации идут через его методы под
// мьютексом, глобального состояния нет.
type App struct {
	config     *config.Config
	log        *slog.Logger
	storage    Storage
	httpClient *httpClient
	sync       *SyncService
	session    SessionState

	mu     gosync.RWMutex
	quotes []quote.Quote
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// Инициализируем локальное хранилище (используем SQLite)
	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath, log)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	// Инициализируем HTTP клиент
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	app := &App{
		config:     cfg,
		log:        log,
		storage:    storage,
		httpClient: httpCl,
	}
	app.sync = NewSyncService(app)

	// Поднимаем снапшот; отсутствующий или нечитаемый заменяется seed-набором
	quotes, err := storage.LoadSnapshot()
	if err != nil {
		log.Warn("Не удалось прочитать снапшот", "error", err)
	}
	if len(quotes) == 0 {
		quotes = quote.Seed()
		if err := storage.SaveSnapshot(quotes); err != nil {
			log.Warn("Не удалось сохранить seed-набор", "error", err)
		}
	}
	app.quotes = quotes

	return app, nil
}

// Quotes возвращает копию текущего набора
func (a *App) Quotes() []quote.Quote {
	a.mu.RLock()
	defer a.mu.RUnlock()
	quotes := make([]quote.Quote, len(a.quotes))
	copy(quotes, a.quotes)
	return quotes
}

// AddQuote создает локальную запись из пользовательского ввода и
// сохраняет набор. Сбой записи на диск не откатывает добавление.
func (a *App) AddQuote(text, category string) (quote.Quote, error) {
	q, err := quote.NewLocal(text, category)
	if err != nil {
		return quote.Quote{}, err
	}

	a.mu.Lock()
	a.quotes = append(a.quotes, q)
	snapshot := make([]quote.Quote, len(a.quotes))
	copy(snapshot, a.quotes)
	a.mu.Unlock()

	if err := a.storage.SaveSnapshot(snapshot); err != nil {
		a.log.Warn("Не удалось сохранить снапшот после добавления", "error", err)
	}
	return q, nil
}

// UpdateQuote правит существующую запись. Правка заново открывает
// pending: у записи снова есть локальное содержимое, не подтвержденное
// сервером, даже если раньше она была успешно отправлена.
func (a *App) UpdateQuote(id, text, category string) (quote.Quote, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)
	if text == "" || category == "" {
		return quote.Quote{}, quote.ErrInvalidCandidate
	}

	a.mu.Lock()
	var (
		updated quote.Quote
		found   bool
	)
	for i := range a.quotes {
		if a.quotes[i].ID != id {
			continue
		}
		a.quotes[i].Text = text
		a.quotes[i].Category = category
		a.quotes[i].Pending = true
		a.quotes[i].UpdatedAt = nowMillis()
		updated = a.quotes[i]
		found = true
		break
	}
	var snapshot []quote.Quote
	if found {
		snapshot = make([]quote.Quote, len(a.quotes))
		copy(snapshot, a.quotes)
	}
	a.mu.Unlock()

	if !found {
		return quote.Quote{}, fmt.Errorf("запись не найдена: %s", id)
	}
	if err := a.storage.SaveSnapshot(snapshot); err != nil {
		a.log.Warn("Не удалось сохранить снапшот после правки", "error", err)
	}
	return updated, nil
}

// ImportFile читает JSON-файл и вливает валидные записи в набор.
// Запись с уже известным id замещает существующую - id в наборе
// остается уникальным.
func (a *App) ImportFile(path string) (quote.ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quote.ImportSummary{}, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	imported, summary, err := quote.ImportJSON(data)
	if err != nil {
		return summary, err
	}

	a.mu.Lock()
	index := make(map[string]int, len(a.quotes))
	for i, q := range a.quotes {
		index[q.ID] = i
	}
	for _, q := range imported {
		if i, ok := index[q.ID]; ok {
			a.quotes[i] = q
			continue
		}
		a.quotes = append(a.quotes, q)
		index[q.ID] = len(a.quotes) - 1
	}
	snapshot := make([]quote.Quote, len(a.quotes))
	copy(snapshot, a.quotes)
	a.mu.Unlock()

	if err := a.storage.SaveSnapshot(snapshot); err != nil {
		a.log.Warn("Не удалось сохранить снапшот после импорта", "error", err)
	}
	return summary, nil
}

// ExportFile выгружает полный набор в отформатированный JSON-файл
func (a *App) ExportFile(path string) error {
	data, err := quote.ExportJSON(a.Quotes())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла: %w", err)
	}
	return nil
}

// Random выбирает случайную запись категории и запоминает ее как
// последнюю показанную в рамках сеанса
func (a *App) Random(category string) (quote.Quote, error) {
	filtered := quote.Filter(a.Quotes(), category)
	q, err := quote.Random(filtered)
	if err != nil {
		return quote.Quote{}, err
	}
	a.session.SetLastViewed(q)
	return q, nil
}

// LastViewed возвращает последнюю показанную запись текущего сеанса
func (a *App) LastViewed() (quote.Quote, bool) {
	return a.session.LastViewed()
}

// Categories возвращает список категорий набора
func (a *App) Categories() []string {
	return quote.Categories(a.Quotes())
}

// SelectCategory сохраняет выбранный фильтр между запусками
func (a *App) SelectCategory(name string) error {
	categories := a.Categories()
	found := false
	for _, c := range categories {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("неизвестная категория: %s", name)
	}
	return a.storage.SaveSelectedCategory(name)
}

// SelectedCategory возвращает сохраненный фильтр (пустая строка - весь набор)
func (a *App) SelectedCategory() string {
	category, err := a.storage.LoadSelectedCategory()
	if err != nil {
		a.log.Warn("Не удалось прочитать выбранную категорию", "error", err)
		return ""
	}
	return category
}

// Sync запускает один цикл синхронизации вручную
func (a *App) Sync(ctx context.Context) (*SyncResult, error) {
	return a.sync.Sync(ctx)
}

// StartAutoSync включает периодическую синхронизацию
func (a *App) StartAutoSync(ctx context.Context) {
	a.sync.StartAutoSync(ctx)
}

// CheckConnection проверяет доступность сервера
func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

// Close останавливает таймер синхронизации и закрывает хранилище
func (a *App) Close() error {
	a.sync.StopAutoSync()
	return a.storage.Close()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// pendingQuotes отдает копии всех записей, ожидающих отправки
func (a *App) pendingQuotes() []quote.Quote {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var pending []quote.Quote
	for _, q := range a.quotes {
		if q.Pending {
			pending = append(pending, q)
		}
	}
	return pending
}

// confirmPush отмечает успешную отправку: запись получает серверный id,
// pending снимается, время обновляется. Запись ищется по старому id -
// если ее уже нет, подтверждение теряет силу.
func (a *App) confirmPush(localID, remoteID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.quotes {
		if a.quotes[i].ID != localID {
			continue
		}
		a.quotes[i].ID = quote.RemoteID(remoteID)
		a.quotes[i].Source = quote.SourceRemote
		a.quotes[i].Pending = false
		a.quotes[i].UpdatedAt = nowMillis()
		return true
	}
	return false
}

// applyMerge сводит набор с серверным списком и возвращает копию
// результата для сохранения
func (a *App) applyMerge(remote []quote.Quote, result *SyncResult) []quote.Quote {
	a.mu.Lock()
	defer a.mu.Unlock()
	merged, conflicts := quote.Merge(a.quotes, remote)
	a.quotes = merged
	result.Conflicts = conflicts

	snapshot := make([]quote.Quote, len(merged))
	copy(snapshot, merged)
	return snapshot
}
