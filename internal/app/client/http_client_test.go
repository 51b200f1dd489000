package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotekeeper/internal/app/client/config"
	"quotekeeper/internal/domain/quote"
)

func testConfig(serverURL string) *config.Config {
	return &config.Config{
		Env:           "local",
		ServerAddress: strings.TrimPrefix(serverURL, "http://"),
		SyncInterval:  30,
		FetchLimit:    10,
	}
}

func TestMapPost(t *testing.T) {
	tests := []struct {
		name         string
		item         postItem
		wantText     string
		wantCategory string
	}{
		{
			name:         "plain item",
			item:         postItem{ID: 7, Title: "quoted wisdom", Body: "Life"},
			wantText:     "quoted wisdom",
			wantCategory: "Life",
		},
		{
			name:         "empty title",
			item:         postItem{ID: 7, Title: "   ", Body: "Life"},
			wantText:     "(no text)",
			wantCategory: "Life",
		},
		{
			name:         "category is first line of body",
			item:         postItem{ID: 7, Title: "x", Body: "  Work \nrest of the body\nmore"},
			wantText:     "x",
			wantCategory: "Work",
		},
		{
			name:         "empty body",
			item:         postItem{ID: 7, Title: "x", Body: " "},
			wantText:     "x",
			wantCategory: "General",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mapPost(tt.item, 123)
			assert.Equal(t, "srv-7", q.ID)
			assert.Equal(t, quote.SourceRemote, q.Source)
			assert.Equal(t, tt.wantText, q.Text)
			assert.Equal(t, tt.wantCategory, q.Category)
			assert.Equal(t, int64(123), q.UpdatedAt)
			assert.False(t, q.Pending)
		})
	}
}

func TestFetchPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"one","body":"A"},
			{"id":2,"title":"two","body":"B"}
		]`))
	}))
	defer srv.Close()

	h, err := NewHTTPClient(testConfig(srv.URL), testLogger())
	require.NoError(t, err)

	quotes, err := h.FetchPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "srv-1", quotes[0].ID)
	assert.Equal(t, "srv-2", quotes[1].ID)
}

func TestFetchPostsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h, err := NewHTTPClient(testConfig(srv.URL), testLogger())
	require.NoError(t, err)

	quotes, err := h.FetchPosts(context.Background())
	assert.Error(t, err)
	assert.Empty(t, quotes)
}

func TestCreatePost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	h, err := NewHTTPClient(testConfig(srv.URL), testLogger())
	require.NoError(t, err)

	id, err := h.CreatePost(context.Background(), quote.Quote{Text: "a", Category: "b"})
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestCreatePostFallbackID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	h, err := NewHTTPClient(testConfig(srv.URL), testLogger())
	require.NoError(t, err)

	id, err := h.CreatePost(context.Background(), quote.Quote{Text: "a", Category: "b"})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "сервер не вернул id - клиент подставляет случайный числовой")
	assert.NotEqual(t, "0", id)
}

func TestCreatePostServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	h, err := NewHTTPClient(testConfig(srv.URL), testLogger())
	require.NoError(t, err)

	_, err = h.CreatePost(context.Background(), quote.Quote{Text: "a", Category: "b"})
	assert.Error(t, err)
}
