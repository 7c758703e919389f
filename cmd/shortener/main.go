package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/app"
	"github.com/InQaaaaGit/shortform/internal/buildinfo"
	"github.com/InQaaaaGit/shortform/internal/config"
)

// Заполняются через -ldflags "-X main.buildVersion=..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Fprint(os.Stdout)

	// Инициализация конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Инициализация логгера
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()
	logger.Debug("Build info", buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Fields()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("Client stopped with error", zap.Error(err))
	}
}

// run создает приложение и выполняет его до выхода пользователя или отмены ctx
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	application, err := app.NewApp(cfg, logger, in, out)
	if err != nil {
		return fmt.Errorf("error creating application: %w", err)
	}
	return application.Run(ctx)
}

// newLogger создает логгер. Логи пишутся в stderr, чтобы не смешиваться с формой;
// без debug выводятся только предупреждения и ошибки.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
