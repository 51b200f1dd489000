package client

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"quotekeeper/internal/domain/quote"
)

// ErrSyncInProgress возвращается при попытке запустить цикл, пока
// предыдущий не завершился
var ErrSyncInProgress = errors.New("синхронизация уже выполняется")

// SyncService выполняет цикл push -> fetch -> merge -> persist.
// Ручной запуск и таймер проходят через один и тот же Sync, поэтому
// два цикла никогда не перемежают свои чтения-записи набора.
type SyncService struct {
	app        *App
	log        *slog.Logger
	mu         gosync.Mutex
	isSyncing  bool
	lastSync   time.Time
	lastResult *SyncResult
	cancelAuto context.CancelFunc
}

// SyncError - ошибка одной операции цикла; не останавливает остальные
type SyncError struct {
	RecordID  string    `json:"record_id,omitempty"`
	Operation string    `json:"operation"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// SyncResult - сводка одного цикла синхронизации
type SyncResult struct {
	Pushed    int              `json:"pushed"`
	Conflicts []quote.Conflict `json:"conflicts,omitempty"`
	Total     int              `json:"total"`
	Errors    []SyncError      `json:"errors,omitempty"`
	Degraded  bool             `json:"degraded"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Duration  time.Duration    `json:"duration"`
}

func NewSyncService(app *App) *SyncService {
	return &SyncService{
		app: app,
		log: app.log.With("component", "sync_service"),
	}
}

// Sync запускает один цикл синхронизации. Повторный вызов во время
// выполнения отклоняется, а не ставится в очередь.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	result := &SyncResult{StartTime: time.Now()}
	s.log.Info("начало синхронизации")

	// 1. Push: отправляем все pending-записи. Каждая попытка независима,
	// сбой одной не блокирует остальные.
	pushed, pushErrors := s.pushPending(ctx)
	result.Pushed = pushed
	result.Errors = append(result.Errors, pushErrors...)

	// 2. Fetch: пустой результат (в том числе из-за сбоя сети) валиден
	// и просто не даст изменений на слиянии.
	remote, err := s.app.httpClient.FetchPosts(ctx)
	if err != nil {
		s.log.Warn("не удалось получить список с сервера", "error", err)
		result.Errors = append(result.Errors, SyncError{
			Operation: "fetch",
			Error:     err.Error(),
			Timestamp: time.Now(),
		})
		remote = nil
	}

	// 3. Merge: server-wins по id, локальные без серверного аналога
	// остаются нетронутыми.
	merged := s.app.applyMerge(remote, result)

	// 4. Persist: сбой записи на диск деградирует статус, но не трогает
	// состояние в памяти - следующий цикл допишет.
	if err := s.app.storage.SaveSnapshot(merged); err != nil {
		s.log.Error("не удалось сохранить снапшот", "error", err)
		result.Degraded = true
		result.Errors = append(result.Errors, SyncError{
			Operation: "persist",
			Error:     err.Error(),
			Timestamp: time.Now(),
		})
	}

	result.Total = len(merged)
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	s.mu.Lock()
	s.lastSync = result.EndTime
	s.lastResult = result
	s.mu.Unlock()

	s.log.Info("синхронизация завершена",
		"pushed", result.Pushed,
		"conflicts", len(result.Conflicts),
		"total", result.Total,
		"errors", len(result.Errors),
		"duration", result.Duration,
	)
	return result, nil
}

type pushOutcome struct {
	localID  string
	remoteID string
	err      error
}

// pushPending отправляет каждую pending-запись отдельной горутиной.
// Попытки мутируют непересекающиеся записи, но все результаты
// применяются до fetch, чтобы слияние видело согласованные pending.
func (s *SyncService) pushPending(ctx context.Context) (int, []SyncError) {
	pending := s.app.pendingQuotes()
	if len(pending) == 0 {
		return 0, nil
	}

	outcomes := make(chan pushOutcome, len(pending))
	var wg gosync.WaitGroup
	for _, q := range pending {
		wg.Add(1)
		go func(q quote.Quote) {
			defer wg.Done()
			remoteID, err := s.app.httpClient.CreatePost(ctx, q)
			outcomes <- pushOutcome{localID: q.ID, remoteID: remoteID, err: err}
		}(q)
	}
	wg.Wait()
	close(outcomes)

	var (
		pushed int
		errs   []SyncError
	)
	for out := range outcomes {
		if out.err != nil {
			// Запись остается pending с локальным id - повторим в
			// следующем цикле
			s.log.Warn("не удалось отправить запись", "record_id", out.localID, "error", out.err)
			errs = append(errs, SyncError{
				RecordID:  out.localID,
				Operation: "push",
				Error:     out.err.Error(),
				Timestamp: time.Now(),
			})
			continue
		}
		if s.app.confirmPush(out.localID, out.remoteID) {
			pushed++
		}
	}

	s.log.Debug("push завершен", "pending", len(pending), "pushed", pushed)
	return pushed, errs
}

// StartAutoSync запускает периодическую синхронизацию. Повторный запуск
// сначала останавливает предыдущий таймер, дублирующихся циклов не бывает.
func (s *SyncService) StartAutoSync(ctx context.Context) {
	interval := time.Duration(s.app.config.SyncInterval) * time.Second

	s.mu.Lock()
	if s.cancelAuto != nil {
		s.cancelAuto()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancelAuto = cancel
	s.mu.Unlock()

	s.log.Info("запуск автоматической синхронизации", "interval", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				s.log.Info("автоматическая синхронизация остановлена")
				return
			case <-ticker.C:
				if _, err := s.Sync(loopCtx); err != nil && !errors.Is(err, ErrSyncInProgress) {
					s.log.Error("ошибка автоматической синхронизации", "error", err)
				}
			}
		}
	}()
}

// StopAutoSync останавливает периодическую синхронизацию, если она шла
func (s *SyncService) StopAutoSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelAuto != nil {
		s.cancelAuto()
		s.cancelAuto = nil
	}
}

// IsSyncing проверяет, выполняется ли цикл прямо сейчас
func (s *SyncService) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSyncing
}

// LastResult возвращает сводку последнего завершенного цикла
func (s *SyncService) LastResult() (*SyncResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return nil, false
	}
	copied := *s.lastResult
	return &copied, true
}

// Summary форматирует сводку цикла для показа пользователю
func (r *SyncResult) Summary() string {
	return fmt.Sprintf("pushed: %d, conflicts: %d, total: %d", r.Pushed, len(r.Conflicts), r.Total)
}
