// Package client реализует HTTP клиент сервиса сокращения ссылок.
// Способ отправки запросов задается интерфейсом Doer, поэтому реальный транспорт
// и демонстрационный симулятор подключаются одинаково.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/models"
)

const (
	contentTypeJSON = "application/json"

	// RequestIDHeader передается с каждым запросом для сопоставления логов клиента и сервиса
	RequestIDHeader = "X-Request-ID"

	// DefaultShortenPath путь эндпоинта сокращения по умолчанию
	DefaultShortenPath = "/api/shorten"
	// DefaultStatsPath путь эндпоинта статистики по умолчанию
	DefaultStatsPath = "/api/stats"
)

// Doer отправляет HTTP запросы. Ему удовлетворяет *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client обращается к сервису сокращения ссылок
type Client struct {
	baseURL     string
	shortenPath string
	statsPath   string
	doer        Doer
	logger      *zap.Logger
}

// Option настраивает Client
type Option func(*Client)

// WithShortenPath задает путь эндпоинта сокращения
func WithShortenPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.shortenPath = p
		}
	}
}

// WithStatsPath задает путь эндпоинта статистики
func WithStatsPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.statsPath = p
		}
	}
}

// WithLogger задает логгер клиента
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient создает клиент. Если doer не задан, используется http.Client без таймаута:
// запрос ограничивается только контекстом вызывающей стороны.
func NewClient(baseURL string, doer Doer, opts ...Option) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	c := &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		shortenPath: DefaultShortenPath,
		statsPath:   DefaultStatsPath,
		doer:        doer,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Shorten отправляет запрос на сокращение ссылки.
// Неуспешный статус возвращается как *ServiceError, сбой сети или некорректное тело ответа как *TransportError.
func (c *Client) Shorten(ctx context.Context, req models.ShortenRequest) (*models.ShortenResult, error) {
	const op = "shorten"

	endpoint, err := url.JoinPath(c.baseURL, c.shortenPath)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	body, err := c.do(ctx, op, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var result models.ShortenResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if result.ShortURL == "" {
		return nil, &TransportError{Op: op, Err: ErrMissingShortURL}
	}
	return &result, nil
}

// Stats запрашивает статистику переходов по короткому коду
func (c *Client) Stats(ctx context.Context, code string) (*models.URLStats, error) {
	const op = "stats"

	code = strings.Trim(strings.TrimSpace(code), "/")
	if code == "" {
		return nil, ErrEmptyCode
	}
	endpoint, err := url.JoinPath(c.baseURL, c.statsPath, url.PathEscape(code))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	body, err := c.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var stats models.URLStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &stats, nil
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, op, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	requestID := uuid.New().String()
	httpReq.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("Error closing response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("Response received",
		zap.String("op", op),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Тело, в котором error не строка, считается ошибкой транспорта
		var errResp models.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("decode error response (status %d): %w", resp.StatusCode, err)}
		}
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(errResp.Error)}
	}
	return body, nil
}
