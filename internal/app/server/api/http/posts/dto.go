package posts

import (
	"quotekeeper/internal/app/server/catalog"
)

type listInput struct {
	Limit int `query:"limit" example:"10" doc:"Максимум элементов страницы"`
}

type listOutput struct {
	Body []catalog.Post
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Title    string `json:"title" doc:"Текст цитаты"`
	Body     string `json:"body" doc:"Категория цитаты"`
	OwnerTag int    `json:"ownerTag,omitempty" doc:"Метка клиента-отправителя"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID int64 `json:"id"`
}
