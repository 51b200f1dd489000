package posts

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"quotekeeper/internal/app/server/catalog"
)

func newTestHandler() *Handler {
	return NewHandler(catalog.New(), slog.Default(), huma.Middlewares{}, 10)
}

func TestHandler_list(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantCount int
	}{
		{name: "default page", limit: 0, wantCount: 10},
		{name: "small page", limit: 3, wantCount: 3},
		{name: "limit above cap", limit: 50, wantCount: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()

			output, err := h.list(context.Background(), &listInput{Limit: tt.limit})

			require.NoError(t, err)
			assert.Len(t, output.Body, tt.wantCount)
		})
	}
}

func TestHandler_create(t *testing.T) {
	h := newTestHandler()

	output, err := h.create(context.Background(), &createInput{
		Body: createRequest{Title: "new quote", Body: "Wisdom", OwnerTag: 1},
	})

	require.NoError(t, err)
	assert.Greater(t, output.Body.ID, int64(10), "id выдается за пределами seed-диапазона")

	// Создание не попадает в коллекцию
	listOut, err := h.list(context.Background(), &listInput{})
	require.NoError(t, err)
	for _, p := range listOut.Body {
		assert.NotEqual(t, output.Body.ID, p.ID)
	}
}

func TestHandler_createUniqueIDs(t *testing.T) {
	h := newTestHandler()

	first, err := h.create(context.Background(), &createInput{
		Body: createRequest{Title: "a", Body: "b"},
	})
	require.NoError(t, err)

	second, err := h.create(context.Background(), &createInput{
		Body: createRequest{Title: "c", Body: "d"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Body.ID, second.Body.ID)
}

func TestHandler_createRejectsEmptyTitle(t *testing.T) {
	h := newTestHandler()

	_, err := h.create(context.Background(), &createInput{
		Body: createRequest{Title: "   ", Body: "Wisdom"},
	})

	assert.Error(t, err)
}
