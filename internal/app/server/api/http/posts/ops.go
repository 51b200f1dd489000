package posts

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "posts-list",
		Method:      http.MethodGet,
		Path:        "/api/posts",
		Summary:     "Страница коллекции постов",
		Description: "Возвращает не больше limit элементов коллекции.",
		Tags:        []string{"posts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "posts-create",
		Method:        http.MethodPost,
		Path:          "/api/posts",
		Summary:       "Принять создание поста",
		Description:   "Присваивает id и отвечает им. Коллекция при этом не меняется.",
		Tags:          []string{"posts"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
