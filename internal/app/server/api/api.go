// Симулируемый удаленный сервис коллекции цитат:
// отдает ограниченную страницу постов и принимает создания,
// не сохраняя их - как публичная заглушка.
//
// GET  /api/posts      # Страница коллекции (limit <= 10)
// POST /api/posts      # Принять создание, ответить id
// GET  /api/v1/health  # Проверка живости

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "quotekeeper/internal/app/server/api/http/health"
	"quotekeeper/internal/app/server/api/http/middleware"
	"quotekeeper/internal/app/server/api/http/middleware/logger"
	postsAPI "quotekeeper/internal/app/server/api/http/posts"
	"quotekeeper/internal/app/server/catalog"
	"quotekeeper/internal/app/server/config"
)

type Handlers struct {
	Health *healthAPI.Handler
	Posts  *postsAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(cfg *config.Config, c *catalog.Catalog, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("QuoteKeeper Remote API", "1.0.0")
	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, c, log)
	h.Health.SetupRoutes(API)
	h.Posts.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, c *catalog.Catalog, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	postsHandler := postsAPI.NewHandler(c, log, middlewares.GetAllAndClear(), cfg.PageSize)

	return &Handlers{
		Health: healthHandler,
		Posts:  postsHandler,
	}
}
