// Package simulator реализует демонстрационный транспорт для клиента сервиса сокращения.
// Simulator удовлетворяет client.Doer: запросы обрабатываются локальным chi роутером
// после фиксированной задержки, сеть не используется.
// Предназначен только для демонстрации интерфейса и включается явно.
package simulator

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/middleware"
	"github.com/InQaaaaGit/shortform/internal/models"
)

const (
	// DefaultDelay задержка перед ответом
	DefaultDelay = 1000 * time.Millisecond
	// PlaceholderDomain префикс синтезированных коротких ссылок
	PlaceholderDomain = "http://your-production-domain.com/go/"

	aliasLength   = 6
	aliasAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	timeLayout    = "2006-01-02 15:04:05"
)

type link struct {
	originalURL string
	createdAt   time.Time
	clicks      int64
}

// Simulator отвечает на запросы клиента синтезированными данными
type Simulator struct {
	router *chi.Mux
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	links map[string]*link
}

// Option настраивает Simulator
type Option func(*Simulator)

// WithDelay задает задержку перед ответом
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithClock задает источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

// New создает симулятор с маршрутами POST /api/shorten и GET /api/stats/{code}
func New(logger *zap.Logger, opts ...Option) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simulator{
		delay:  DefaultDelay,
		logger: logger,
		now:    time.Now,
		links:  make(map[string]*link),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Post("/api/shorten", s.handleShorten)
	r.Get("/api/stats/{code}", s.handleStats)
	s.router = r

	return s
}

// Do обрабатывает запрос после задержки. Отмена контекста прерывает ожидание.
func (s *Simulator) Do(req *http.Request) (*http.Response, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-req.Context().Done():
		return nil, req.Context().Err()
	case <-timer.C:
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

func (s *Simulator) handleShorten(w http.ResponseWriter, r *http.Request) {
	var req models.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	alias := strings.TrimSpace(req.CustomText)
	if alias == "" {
		alias = GenerateAlias(aliasLength)
	}
	originalURL := normalizeURL(req.URL)
	createdAt := s.now()

	s.mu.Lock()
	s.links[alias] = &link{originalURL: originalURL, createdAt: createdAt}
	s.mu.Unlock()

	s.logger.Debug("Synthesized short URL", zap.String("alias", alias), zap.String("original_url", originalURL))

	writeJSON(w, http.StatusOK, models.ShortenResult{
		ShortURL:    PlaceholderDomain + alias,
		OriginalURL: originalURL,
		CreatedAt:   createdAt.Format(timeLayout),
	})
}

func (s *Simulator) handleStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	s.mu.Lock()
	l, ok := s.links[code]
	var stats models.URLStats
	if ok {
		stats = models.URLStats{
			OriginalURL: l.originalURL,
			CreatedAt:   l.createdAt.Format(timeLayout),
			Clicks:      l.clicks,
		}
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "URL not found"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GenerateAlias возвращает строку из length случайных латинских букв и цифр
func GenerateAlias(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = aliasAlphabet[rand.Intn(len(aliasAlphabet))]
	}
	return string(b)
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "http://" + raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
