package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/clipboard"
	"github.com/InQaaaaGit/shortform/internal/config"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	logger, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestRun(t *testing.T) {
	newConfig := func(mode string) *config.Config {
		return &config.Config{
			BaseURL:       "http://localhost:5000",
			ShortenPath:   "/api/shorten",
			StatsPath:     "/api/stats",
			ClipboardMode: mode,
		}
	}

	t.Run("Quit", func(t *testing.T) {
		var out bytes.Buffer
		err := run(context.Background(), newConfig("osc52"), zap.NewNop(), strings.NewReader("q\n"), &out)
		assert.NoError(t, err)
	})

	t.Run("Unknown clipboard mode", func(t *testing.T) {
		var out bytes.Buffer
		err := run(context.Background(), newConfig("x11"), zap.NewNop(), strings.NewReader(""), &out)
		assert.ErrorIs(t, err, clipboard.ErrUnknownMode)
		assert.Empty(t, out.String())
	})
}
