package posts

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"quotekeeper/internal/app/server/catalog"
)

type Handler struct {
	catalog    *catalog.Catalog
	log        *slog.Logger
	middleware huma.Middlewares
	pageSize   int
}

func NewHandler(c *catalog.Catalog, log *slog.Logger, mws huma.Middlewares, pageSize int) *Handler {
	return &Handler{
		catalog:    c,
		log:        log.With("component", "posts_handler"),
		middleware: mws,
		pageSize:   pageSize,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
}

func (h *Handler) list(_ context.Context, input *listInput) (*listOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > h.pageSize {
		limit = h.pageSize
	}

	page := h.catalog.List(limit)
	h.log.Debug("выдана страница коллекции", "count", len(page))

	return &listOutput{Body: page}, nil
}

func (h *Handler) create(_ context.Context, input *createInput) (*createOutput, error) {
	if strings.TrimSpace(input.Body.Title) == "" {
		return nil, huma.Error422UnprocessableEntity("title must be non-empty")
	}

	// Создание принимается и получает id, но коллекцию не меняет -
	// последующие list его не вернут
	id := h.catalog.AssignID()
	h.log.Debug("принято создание", "id", id, "ownerTag", input.Body.OwnerTag)

	return &createOutput{
		Body: createResponse{ID: id},
	}, nil
}
