// Package controller реализует контроллер формы сокращения ссылок.
// Контроллер читает поля формы, проверяет ввод, обращается к сервису и отображает
// результат или ошибку, а также копирует короткую ссылку в буфер обмена.
// Все ошибки обрабатываются здесь: пользователь видит сообщение, подробности уходят в лог.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/client"
	"github.com/InQaaaaGit/shortform/internal/clipboard"
	"github.com/InQaaaaGit/shortform/internal/models"
	"github.com/InQaaaaGit/shortform/internal/textutil"
)

const (
	SubmitLabel      = "Shorten"
	SubmittingLabel  = "Shortening..."
	CopyLabel        = "Copy"
	CopyConfirmLabel = "✓"

	MsgInvalidURL    = "Please enter a valid URL"
	MsgShortenFailed = "Failed to shorten URL"
	MsgRetry         = "An error occurred. Please try again."

	// CopyFeedbackDelay время, в течение которого кнопка копирования показывает подтверждение
	CopyFeedbackDelay = 2000 * time.Millisecond
	// OriginalURLMaxLength максимальная длина отображаемой исходной ссылки
	OriginalURLMaxLength = 50
	// TimestampLayout формат времени создания ссылки
	TimestampLayout = "2006-01-02 15:04:05"
)

//go:generate mockgen -destination=mocks/shortener_mock.go -package=mocks github.com/InQaaaaGit/shortform/internal/controller Shortener
//go:generate mockgen -destination=mocks/copier_mock.go -package=mocks github.com/InQaaaaGit/shortform/internal/clipboard Copier

// Shortener отправляет запрос на сокращение ссылки
type Shortener interface {
	Shorten(ctx context.Context, req models.ShortenRequest) (*models.ShortenResult, error)
}

// Controller управляет формой сокращения
type Controller struct {
	shortener Shortener
	copier    clipboard.Copier
	view      View
	logger    *zap.Logger

	now          func() time.Time
	copyFeedback time.Duration

	inFlight atomic.Bool

	mu      sync.Mutex
	state   State
	lastErr error
}

// Option настраивает Controller
type Option func(*Controller)

// WithClock задает источник времени для отметки о создании ссылки
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCopyFeedback задает длительность подтверждения копирования
func WithCopyFeedback(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.copyFeedback = d
		}
	}
}

// New создает контроллер и приводит кнопки страницы в исходное состояние
func New(shortener Shortener, copier clipboard.Copier, view View, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		shortener:    shortener,
		copier:       copier,
		view:         view,
		logger:       logger,
		now:          time.Now,
		copyFeedback: CopyFeedbackDelay,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}

	view.SetSubmitLabel(SubmitLabel)
	view.SetSubmitEnabled(true)
	view.SetCopyLabel(CopyLabel)

	return c
}

// State возвращает текущее состояние формы
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError возвращает ошибку последней отправки или nil, если она завершилась успешно
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) setState(state State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.lastErr = err
}

// Submit отправляет содержимое формы сервису.
// Повторный вызов во время выполнения запроса игнорируется. Автоматических повторов нет.
// Кнопка отправки восстанавливается при любом исходе. Отмена контекста
// не показывает сообщение об ошибке.
func (c *Controller) Submit(ctx context.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("Submit ignored", zap.Error(ErrSubmitInFlight))
		return
	}
	defer c.inFlight.Store(false)

	originalURL := strings.TrimSpace(c.view.URLValue())
	customText := strings.TrimSpace(c.view.CustomTextValue())

	if originalURL == "" {
		c.setState(StateError, ErrEmptyURL)
		c.view.Alert(MsgInvalidURL)
		return
	}

	c.setState(StateSubmitting, nil)
	c.view.SetSubmitLabel(SubmittingLabel)
	c.view.SetSubmitEnabled(false)
	defer func() {
		c.view.SetSubmitLabel(SubmitLabel)
		c.view.SetSubmitEnabled(true)
		if c.State() == StateSubmitting {
			c.setState(StateError, errors.New("submit interrupted"))
		}
	}()

	result, err := c.shortener.Shorten(ctx, models.ShortenRequest{URL: originalURL, CustomText: customText})
	if err != nil {
		c.setState(StateError, err)
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("Shorten request canceled", zap.String("original_url", originalURL))
			return
		}
		c.view.Alert(c.failureMessage(err))
		return
	}

	c.view.SetShortURL(result.ShortURL)
	c.view.SetOriginalURL(textutil.Truncate(originalURL, OriginalURLMaxLength))
	c.view.SetCreatedAt(c.now().Format(TimestampLayout))
	c.view.ShowResult()
	c.view.ScrollToResult()
	c.setState(StateSuccess, nil)

	c.logger.Info("URL shortened",
		zap.String("original_url", originalURL),
		zap.String("short_url", result.ShortURL),
	)
}

// failureMessage пишет ошибку в лог и возвращает текст для пользователя
func (c *Controller) failureMessage(err error) string {
	var svcErr *client.ServiceError
	if errors.As(err, &svcErr) {
		c.logger.Warn("Service rejected shorten request",
			zap.Int("status", svcErr.StatusCode),
			zap.String("message", svcErr.Message),
		)
		if svcErr.Message != "" {
			return svcErr.Message
		}
		return MsgShortenFailed
	}

	c.logger.Error("Error shortening URL", zap.Error(err))
	return MsgRetry
}

// Copy копирует показанную короткую ссылку в буфер обмена.
// Кнопка копирования показывает подтверждение на время copyFeedback, затем к ней
// возвращается надпись, бывшая в момент нажатия. Ошибки копирования только пишутся в лог.
func (c *Controller) Copy(ctx context.Context) {
	shortURL := c.view.ShortURL()
	if shortURL == "" {
		c.logger.Debug("Copy ignored", zap.Error(ErrNothingToCopy))
		return
	}

	if err := c.copier.Copy(ctx, shortURL); err != nil {
		c.logger.Error("Failed to copy",
			zap.String("strategy", string(c.copier.Strategy())),
			zap.Error(err),
		)
		// Синхронная стратегия не сообщает о результате странице, подтверждение показывается всегда
		if c.copier.Strategy() == clipboard.StrategyNative {
			return
		}
	}

	previous := c.view.CopyLabel()
	c.view.SetCopyLabel(CopyConfirmLabel)
	time.AfterFunc(c.copyFeedback, func() {
		c.view.SetCopyLabel(previous)
	})
}
