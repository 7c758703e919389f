// Package app содержит основную структуру приложения и логику инициализации.
// Связывает конфигурацию, транспорт, клиент сервиса, буфер обмена, контроллер формы
// и терминальную страницу, а также реализует цикл ввода команд.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/client"
	"github.com/InQaaaaGit/shortform/internal/clipboard"
	"github.com/InQaaaaGit/shortform/internal/config"
	"github.com/InQaaaaGit/shortform/internal/console"
	"github.com/InQaaaaGit/shortform/internal/controller"
	"github.com/InQaaaaGit/shortform/internal/simulator"
)

const (
	promptURL     = "URL (or 'stats <code>', 'q' to quit): "
	promptAlias   = "Custom alias (optional): "
	promptActions = "[c] copy  [Enter] new link  [q] quit: "
)

// App представляет клиентское приложение сервиса сокращения URL.
type App struct {
	config     *config.Config
	logger     *zap.Logger
	client     *client.Client
	controller *controller.Controller
	page       *console.Page
}

// Option настраивает App
type Option func(*appOptions)

type appOptions struct {
	doer       client.Doer
	copier     clipboard.Copier
	controller []controller.Option
}

// WithDoer задает транспорт вместо выбранного по конфигурации
func WithDoer(doer client.Doer) Option {
	return func(o *appOptions) {
		o.doer = doer
	}
}

// WithCopier задает способ копирования вместо выбранного по конфигурации
func WithCopier(copier clipboard.Copier) Option {
	return func(o *appOptions) {
		o.copier = copier
	}
}

// WithControllerOptions передает опции контроллеру формы
func WithControllerOptions(opts ...controller.Option) Option {
	return func(o *appOptions) {
		o.controller = append(o.controller, opts...)
	}
}

// NewApp создает приложение. Ввод пользователя читается из in, страница выводится в out.
//
// Параметры:
//   - cfg: конфигурация клиента
//   - logger: логгер для диагностических сообщений
//
// Возвращает ошибку, если выбранный способ копирования недоступен.
func NewApp(cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer, opts ...Option) (*App, error) {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}

	doer := o.doer
	if doer == nil {
		doer = newDoer(cfg, logger)
	}

	copier := o.copier
	if copier == nil {
		var err error
		copier, err = clipboard.Detect(clipboard.Mode(cfg.ClipboardMode), out)
		if err != nil {
			return nil, fmt.Errorf("error selecting clipboard: %w", err)
		}
	}
	logger.Info("Clipboard strategy selected", zap.String("strategy", string(copier.Strategy())))

	c := client.NewClient(cfg.BaseURL, doer,
		client.WithShortenPath(cfg.ShortenPath),
		client.WithStatsPath(cfg.StatsPath),
		client.WithLogger(logger),
	)
	page := console.NewPage(in, out)
	ctrl := controller.New(c, copier, page, logger, o.controller...)

	return &App{
		config:     cfg,
		logger:     logger,
		client:     c,
		controller: ctrl,
		page:       page,
	}, nil
}

// newDoer возвращает транспорт: симулятор только в демонстрационном режиме
func newDoer(cfg *config.Config, logger *zap.Logger) client.Doer {
	if cfg.DemoMode {
		logger.Warn("Demo mode enabled: service responses are simulated, no requests leave this process")
		return simulator.New(logger)
	}
	return &http.Client{}
}

// Run выполняет цикл ввода до команды выхода, окончания ввода или отмены контекста.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Client started", zap.String("base_url", a.config.BaseURL), zap.Bool("demo", a.config.DemoMode))
	defer a.page.Close()

	for {
		line, err := a.page.ReadLine(ctx, promptURL)
		if err != nil {
			return a.stop(err)
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "q" || line == "quit":
			return nil
		case strings.HasPrefix(line, "stats "):
			a.showStats(ctx, strings.TrimPrefix(line, "stats "))
			continue
		}

		alias, err := a.page.ReadLine(ctx, promptAlias)
		if err != nil {
			return a.stop(err)
		}

		a.page.Fill(line, alias)
		a.controller.Submit(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if a.controller.State() != controller.StateSuccess {
			continue
		}

		quit, err := a.resultActions(ctx)
		if err != nil {
			return a.stop(err)
		}
		if quit {
			return nil
		}
	}
}

// resultActions обрабатывает команды, пока показан результат. Возвращает true для выхода.
func (a *App) resultActions(ctx context.Context) (bool, error) {
	for {
		action, err := a.page.ReadLine(ctx, promptActions)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(action)) {
		case "c", "copy":
			a.controller.Copy(ctx)
		case "":
			return false, nil
		case "q", "quit":
			return true, nil
		default:
			a.page.Printf("Unknown command %q\n", action)
		}
	}
}

func (a *App) showStats(ctx context.Context, code string) {
	stats, err := a.client.Stats(ctx, code)
	if err != nil {
		var svcErr *client.ServiceError
		switch {
		case errors.Is(err, context.Canceled):
			a.logger.Debug("Stats request canceled", zap.String("code", code))
		case errors.Is(err, client.ErrEmptyCode):
			a.page.Alert("Please enter a short code")
		case errors.As(err, &svcErr) && svcErr.Message != "":
			a.page.Alert(svcErr.Message)
		default:
			a.logger.Error("Error fetching stats", zap.String("code", code), zap.Error(err))
			a.page.Alert(controller.MsgRetry)
		}
		return
	}
	a.page.ShowStats(stats.OriginalURL, stats.CreatedAt, stats.Clicks)
}

// stop переводит причину остановки цикла в результат Run
func (a *App) stop(err error) error {
	if errors.Is(err, console.ErrInputClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
