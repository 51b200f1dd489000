package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotekeeper/internal/domain/quote"
)

// fakeRemote - управляемый тестовый сервер удаленной коллекции
type fakeRemote struct {
	srv *httptest.Server

	posts      atomic.Value // []map[string]any
	nextID     atomic.Int64
	failCreate atomic.Bool
	failList   atomic.Bool
	created    atomic.Int64
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	f := &fakeRemote{}
	f.posts.Store([]map[string]any{})
	f.nextID.Store(42)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		if f.failList.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.posts.Load())
	})
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		if f.failCreate.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.created.Add(1)
		// Создание принимается, но в список не попадает - как у настоящего
		// сервера-заглушки
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int64{"id": f.nextID.Add(1) - 1})
	})
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK"}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRemote) setPosts(posts []map[string]any) {
	f.posts.Store(posts)
}

func newTestApp(t *testing.T, remote *fakeRemote) *App {
	t.Helper()
	cfg := testConfig(remote.srv.URL)
	cfg.DataPath = filepath.Join(t.TempDir(), "quotes.db")

	app, err := New(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func findQuote(t *testing.T, quotes []quote.Quote, id string) quote.Quote {
	t.Helper()
	for _, q := range quotes {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("запись %s не найдена в наборе", id)
	return quote.Quote{}
}

func TestSyncPushReassignsPending(t *testing.T) {
	remote := newFakeRemote(t)
	app := newTestApp(t, remote)
	seedCount := len(app.Quotes())

	q, err := app.AddQuote("Stay hungry", "Motivation")
	require.NoError(t, err)
	assert.True(t, q.Pending)
	assert.True(t, strings.HasPrefix(q.ID, "loc-"))

	result, err := app.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pushed)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, seedCount+1, result.Total)

	pushed := findQuote(t, app.Quotes(), "srv-42")
	assert.False(t, pushed.Pending)
	assert.Equal(t, quote.SourceRemote, pushed.Source)
	assert.Equal(t, "Stay hungry", pushed.Text)
}

func TestSyncEndToEndConflict(t *testing.T) {
	remote := newFakeRemote(t)
	app := newTestApp(t, remote)

	// Новая локальная запись уходит на сервер и становится srv-42
	_, err := app.AddQuote("Stay hungry", "Motivation")
	require.NoError(t, err)

	result, err := app.Sync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Pushed)

	// Локальная правка заново открывает pending
	_, err = app.UpdateQuote("srv-42", "Stay hungry, stay foolish", "Motivation")
	require.NoError(t, err)

	// Сервер отвечает своей версией той же записи с другим текстом
	remote.setPosts([]map[string]any{
		{"id": 42, "title": "Stay very hungry", "body": "Motivation"},
	})
	remote.failCreate.Store(true) // повторный push должен провалиться, запись останется pending

	result, err = app.Sync(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Conflicts, 1, "ровно один конфликт для вытесненной правки")
	assert.Equal(t, "Stay hungry, stay foolish", result.Conflicts[0].Local.Text)
	assert.Equal(t, "Stay very hungry", result.Conflicts[0].Remote.Text)

	final := findQuote(t, app.Quotes(), "srv-42")
	assert.Equal(t, "Stay very hungry", final.Text, "server-wins: остается серверный текст")
	assert.False(t, final.Pending)
}

func TestSyncPushFailureLeavesPending(t *testing.T) {
	remote := newFakeRemote(t)
	remote.failCreate.Store(true)
	app := newTestApp(t, remote)

	q, err := app.AddQuote("will retry", "Motivation")
	require.NoError(t, err)

	result, err := app.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Pushed)
	require.NotEmpty(t, result.Errors)

	stillLocal := findQuote(t, app.Quotes(), q.ID)
	assert.True(t, stillLocal.Pending, "после сбоя запись не изменена и будет отправлена в следующем цикле")
	assert.True(t, strings.HasPrefix(stillLocal.ID, "loc-"))

	// Сервер ожил - следующий цикл дотягивает запись
	remote.failCreate.Store(false)
	result, err = app.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pushed)
}

func TestSyncFetchFailureKeepsCycleAlive(t *testing.T) {
	remote := newFakeRemote(t)
	remote.failList.Store(true)
	app := newTestApp(t, remote)
	before := app.Quotes()

	result, err := app.Sync(context.Background())
	require.NoError(t, err, "сбой fetch не фатален для цикла")

	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "fetch", result.Errors[0].Operation)
	assert.Equal(t, before, app.Quotes(), "пустой серверный ответ не меняет набор")
}

func TestSyncNewFromRemoteAndRetention(t *testing.T) {
	remote := newFakeRemote(t)
	remote.setPosts([]map[string]any{
		{"id": 7, "title": "from server", "body": "Wisdom"},
	})
	app := newTestApp(t, remote)
	seedCount := len(app.Quotes())

	result, err := app.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seedCount+1, result.Total, "новая серверная запись добавлена, локальные сохранены")
	added := findQuote(t, app.Quotes(), "srv-7")
	assert.Equal(t, "from server", added.Text)
	assert.Equal(t, "Wisdom", added.Category)
}

func TestSyncReentrancyGuard(t *testing.T) {
	remote := newFakeRemote(t)
	app := newTestApp(t, remote)

	app.sync.mu.Lock()
	app.sync.isSyncing = true
	app.sync.mu.Unlock()

	_, err := app.Sync(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)

	app.sync.mu.Lock()
	app.sync.isSyncing = false
	app.sync.mu.Unlock()

	_, err = app.Sync(context.Background())
	assert.NoError(t, err)
}

func TestSyncPersistsMergedSnapshot(t *testing.T) {
	remote := newFakeRemote(t)
	remote.setPosts([]map[string]any{
		{"id": 9, "title": "persist me", "body": "Wisdom"},
	})
	app := newTestApp(t, remote)

	_, err := app.Sync(context.Background())
	require.NoError(t, err)

	// Снапшот после цикла содержит результат слияния
	loaded, err := app.storage.LoadSnapshot()
	require.NoError(t, err)
	findQuote(t, loaded, "srv-9")
}

func TestStartAutoSyncRestart(t *testing.T) {
	remote := newFakeRemote(t)
	app := newTestApp(t, remote)
	app.config.SyncInterval = 1

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Повторный запуск замещает предыдущий таймер, а не добавляет второй
	app.StartAutoSync(ctx)
	app.StartAutoSync(ctx)
	app.sync.StopAutoSync()

	// Остановленный таймер не делает циклов
	created := remote.created.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, created, remote.created.Load())
}
