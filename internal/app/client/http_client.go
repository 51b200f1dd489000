package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"quotekeeper/internal/app/client/config"
	"quotekeeper/internal/domain/quote"
)

const (
	fallbackText     = "(no text)"
	fallbackCategory = "General"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log.With("component", "http_client"),
		baseURL:   baseURL,
		userAgent: "QuoteKeeper-Client/1.0",
	}, nil
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}
	return nil
}

// postItem - элемент удаленной коллекции в том виде, как его отдает сервер
type postItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FetchPosts выполняет один запрос списка и переводит каждый элемент
// в доменную запись. Сбой транспорта не фатален: возвращается пустой
// результат и ошибка, цикл синхронизации продолжится без новых данных.
func (h *httpClient) FetchPosts(ctx context.Context) ([]quote.Quote, error) {
	url := fmt.Sprintf("%s/api/posts?limit=%d", h.baseURL, h.config.FetchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	var items []postItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("ошибка парсинга списка: %w", err)
	}

	now := time.Now().UnixMilli()
	quotes := make([]quote.Quote, 0, len(items))
	for _, item := range items {
		quotes = append(quotes, mapPost(item, now))
	}

	h.log.Debug("получен список с сервера", "count", len(quotes))
	return quotes, nil
}

// mapPost переводит серверный элемент в доменную запись.
// У сервера нет времени модификации, поэтому свежесть показывается
// как "только что получено".
func mapPost(item postItem, now int64) quote.Quote {
	text := strings.TrimSpace(item.Title)
	if text == "" {
		text = fallbackText
	}

	category := strings.TrimSpace(item.Body)
	if i := strings.IndexByte(category, '\n'); i >= 0 {
		category = strings.TrimSpace(category[:i])
	}
	if category == "" {
		category = fallbackCategory
	}

	return quote.Quote{
		ID:        quote.RemoteID(strconv.FormatInt(item.ID, 10)),
		Source:    quote.SourceRemote,
		Text:      text,
		Category:  category,
		UpdatedAt: now,
	}
}

type createPostRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	OwnerTag int    `json:"ownerTag"`
}

type createPostResponse struct {
	ID int64 `json:"id"`
}

// CreatePost отправляет одну запись на сервер и возвращает присвоенный
// числовой идентификатор. Сервер не обязан сохранять создание, поэтому
// если id в ответе отсутствует - подставляется случайный.
func (h *httpClient) CreatePost(ctx context.Context, q quote.Quote) (string, error) {
	payload, err := json.Marshal(createPostRequest{
		Title:    q.Text,
		Body:     q.Category,
		OwnerTag: 1,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/api/posts", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	var created createPostResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if created.ID == 0 {
		created.ID = int64(rand.Intn(900000) + 100000)
		h.log.Debug("сервер не вернул id, подставлен случайный", "id", created.ID)
	}

	return strconv.FormatInt(created.ID, 10), nil
}
