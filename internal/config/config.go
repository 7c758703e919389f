// Package config собирает конфигурацию клиента из значений по умолчанию,
// JSON файла, флагов командной строки и переменных окружения.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
)

const (
	defaultBaseURL       = "http://localhost:5000"
	defaultShortenPath   = "/api/shorten"
	defaultStatsPath     = "/api/stats"
	defaultClipboardMode = "auto"
)

// Config хранит конфигурацию приложения.
type Config struct {
	BaseURL       string `env:"BASE_URL"`       // Адрес сервиса сокращения
	ShortenPath   string `env:"SHORTEN_PATH"`   // Путь эндпоинта сокращения
	StatsPath     string `env:"STATS_PATH"`     // Путь эндпоинта статистики
	ClipboardMode string `env:"CLIPBOARD_MODE"` // auto, native или osc52
	DemoMode      bool   `env:"DEMO_MODE"`      // Ответы сервиса синтезируются локально
	Debug         bool   `env:"DEBUG"`          // Development логгер
	ConfigFile    string `env:"CONFIG"`         // Путь к JSON файлу конфигурации
}

// JSONConfig описывает JSON файл конфигурации. Отсутствующие поля не меняют значения.
type JSONConfig struct {
	BaseURL       *string `json:"base_url"`
	ShortenPath   *string `json:"shorten_path"`
	StatsPath     *string `json:"stats_path"`
	ClipboardMode *string `json:"clipboard_mode"`
	DemoMode      *bool   `json:"demo_mode"`
	Debug         *bool   `json:"debug"`
}

// NewConfig инициализирует конфигурацию из аргументов командной строки и окружения.
func NewConfig() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse собирает конфигурацию. Приоритет по возрастанию:
// значения по умолчанию, JSON файл, флаги, переменные окружения.
func Parse(args []string) (*Config, error) {
	cfg := &Config{
		BaseURL:       defaultBaseURL,
		ShortenPath:   defaultShortenPath,
		StatsPath:     defaultStatsPath,
		ClipboardMode: defaultClipboardMode,
	}

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Адрес сервиса сокращения (env: BASE_URL)")
	fs.StringVar(&cfg.ShortenPath, "p", cfg.ShortenPath, "Путь эндпоинта сокращения (env: SHORTEN_PATH)")
	fs.StringVar(&cfg.StatsPath, "stats-path", cfg.StatsPath, "Путь эндпоинта статистики (env: STATS_PATH)")
	fs.StringVar(&cfg.ClipboardMode, "clipboard", cfg.ClipboardMode, "Способ копирования: auto, native, osc52 (env: CLIPBOARD_MODE)")
	fs.BoolVar(&cfg.DemoMode, "demo", cfg.DemoMode, "Демонстрационный режим без сети (env: DEMO_MODE)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Подробное логирование (env: DEBUG)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Путь к JSON файлу конфигурации (env: CONFIG)")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Путь к JSON файлу конфигурации (env: CONFIG)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Флаги, заданные явно, не перекрываются значениями из файла
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG")
	}
	jsonCfg, err := loadJSONConfig(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	applyJSONConfig(cfg, jsonCfg, explicit)

	// Переменные окружения имеют наивысший приоритет
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadJSONConfig читает файл конфигурации. Пустое имя означает пустую конфигурацию.
func loadJSONConfig(filename string) (*JSONConfig, error) {
	if filename == "" {
		return &JSONConfig{}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", filename, err)
	}

	var cfg JSONConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", filename, err)
	}
	return &cfg, nil
}

// applyJSONConfig переносит значения из файла в поля, не заданные флагами
func applyJSONConfig(cfg *Config, jsonCfg *JSONConfig, explicit map[string]bool) {
	if jsonCfg == nil {
		return
	}
	if jsonCfg.BaseURL != nil && !explicit["b"] {
		cfg.BaseURL = *jsonCfg.BaseURL
	}
	if jsonCfg.ShortenPath != nil && !explicit["p"] {
		cfg.ShortenPath = *jsonCfg.ShortenPath
	}
	if jsonCfg.StatsPath != nil && !explicit["stats-path"] {
		cfg.StatsPath = *jsonCfg.StatsPath
	}
	if jsonCfg.ClipboardMode != nil && !explicit["clipboard"] {
		cfg.ClipboardMode = *jsonCfg.ClipboardMode
	}
	if jsonCfg.DemoMode != nil && !explicit["demo"] {
		cfg.DemoMode = *jsonCfg.DemoMode
	}
	if jsonCfg.Debug != nil && !explicit["debug"] {
		cfg.Debug = *jsonCfg.Debug
	}
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ShortenPath, "/") {
		return fmt.Errorf("shorten path must start with '/', got %q", cfg.ShortenPath)
	}
	if !strings.HasPrefix(cfg.StatsPath, "/") {
		return fmt.Errorf("stats path must start with '/', got %q", cfg.StatsPath)
	}
	switch cfg.ClipboardMode {
	case "auto", "native", "osc52":
	default:
		return errors.New("clipboard mode must be one of auto, native, osc52")
	}
	return nil
}
