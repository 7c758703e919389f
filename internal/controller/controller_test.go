package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/shortform/internal/client"
	"github.com/InQaaaaGit/shortform/internal/clipboard"
	"github.com/InQaaaaGit/shortform/internal/controller/mocks"
	"github.com/InQaaaaGit/shortform/internal/models"
)

// fakeView хранит состояние страницы в памяти
type fakeView struct {
	mu            sync.Mutex
	url           string
	customText    string
	submitLabel   string
	submitEnabled bool
	alerts        []string
	shortURL      string
	originalURL   string
	createdAt     string
	resultVisible bool
	scrolled      bool
	copyLabel     string
}

func (v *fakeView) URLValue() string { v.mu.Lock(); defer v.mu.Unlock(); return v.url }
func (v *fakeView) CustomTextValue() string { v.mu.Lock(); defer v.mu.Unlock(); return v.customText }
func (v *fakeView) SetSubmitLabel(l string) { v.mu.Lock(); defer v.mu.Unlock(); v.submitLabel = l }
func (v *fakeView) SetSubmitEnabled(e bool) { v.mu.Lock(); defer v.mu.Unlock(); v.submitEnabled = e }
func (v *fakeView) Alert(m string) { v.mu.Lock(); defer v.mu.Unlock(); v.alerts = append(v.alerts, m) }
func (v *fakeView) SetShortURL(s string) { v.mu.Lock(); defer v.mu.Unlock(); v.shortURL = s }
func (v *fakeView) ShortURL() string { v.mu.Lock(); defer v.mu.Unlock(); return v.shortURL }
func (v *fakeView) SetOriginalURL(s string) { v.mu.Lock(); defer v.mu.Unlock(); v.originalURL = s }
func (v *fakeView) SetCreatedAt(s string) { v.mu.Lock(); defer v.mu.Unlock(); v.createdAt = s }
func (v *fakeView) ShowResult() { v.mu.Lock(); defer v.mu.Unlock(); v.resultVisible = true }
func (v *fakeView) ScrollToResult() { v.mu.Lock(); defer v.mu.Unlock(); v.scrolled = true }
func (v *fakeView) CopyLabel() string { v.mu.Lock(); defer v.mu.Unlock(); return v.copyLabel }
func (v *fakeView) SetCopyLabel(l string) { v.mu.Lock(); defer v.mu.Unlock(); v.copyLabel = l }

func (v *fakeView) submitState() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitLabel, v.submitEnabled
}

func (v *fakeView) alertList() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.alerts...)
}

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func newTestController(t *testing.T, view *fakeView) (*Controller, *mocks.MockShortener, *mocks.MockCopier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	shortener := mocks.NewMockShortener(ctrl)
	copier := mocks.NewMockCopier(ctrl)

	c := New(shortener, copier, view, zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
		WithCopyFeedback(20*time.Millisecond),
	)
	return c, shortener, copier
}

func TestNewResetsControls(t *testing.T) {
	view := &fakeView{}
	c, _, _ := newTestController(t, view)

	label, enabled := view.submitState()
	assert.Equal(t, SubmitLabel, label)
	assert.True(t, enabled)
	assert.Equal(t, CopyLabel, view.CopyLabel())
	assert.Equal(t, StateIdle, c.State())
}

func TestSubmitValidation(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		t.Run("input "+strings.ReplaceAll(input, "\n", `\n`), func(t *testing.T) {
			view := &fakeView{url: input}
			// Без ожиданий любой вызов Shorten провалит тест
			c, _, _ := newTestController(t, view)

			c.Submit(context.Background())

			assert.Equal(t, []string{MsgInvalidURL}, view.alertList())
			assert.Equal(t, StateError, c.State())
			assert.ErrorIs(t, c.LastError(), ErrEmptyURL)

			var vErr *ValidationError
			assert.True(t, errors.As(c.LastError(), &vErr))
			assert.False(t, view.resultVisible)
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	longURL := "example.com/very/long/path/that/keeps/going/and/going/on"
	require.Greater(t, len(longURL), OriginalURLMaxLength)

	view := &fakeView{url: "  " + longURL + " ", customText: ""}
	c, shortener, _ := newTestController(t, view)

	shortener.EXPECT().
		Shorten(gomock.Any(), models.ShortenRequest{URL: longURL, CustomText: ""}).
		DoAndReturn(func(ctx context.Context, req models.ShortenRequest) (*models.ShortenResult, error) {
			label, enabled := view.submitState()
			assert.Equal(t, SubmittingLabel, label)
			assert.False(t, enabled)
			assert.Equal(t, StateSubmitting, c.State())
			return &models.ShortenResult{ShortURL: "http://x/go/abc123", OriginalURL: "http://ignored"}, nil
		})

	c.Submit(context.Background())

	assert.True(t, view.resultVisible)
	assert.True(t, view.scrolled)
	assert.Equal(t, "http://x/go/abc123", view.ShortURL())
	assert.Equal(t, longURL[:OriginalURLMaxLength]+"...", view.originalURL)
	assert.Equal(t, "2024-05-01 12:30:00", view.createdAt)
	assert.Empty(t, view.alertList())
	assert.Equal(t, StateSuccess, c.State())
	assert.NoError(t, c.LastError())

	label, enabled := view.submitState()
	assert.Equal(t, SubmitLabel, label)
	assert.True(t, enabled)
}

func TestSubmitTrimsCustomText(t *testing.T) {
	view := &fakeView{url: "example.com", customText: "  docs  "}
	c, shortener, _ := newTestController(t, view)

	shortener.EXPECT().
		Shorten(gomock.Any(), models.ShortenRequest{URL: "example.com", CustomText: "docs"}).
		Return(&models.ShortenResult{ShortURL: "http://x/docs"}, nil)

	c.Submit(context.Background())
	assert.Equal(t, "example.com", view.originalURL)
}

func TestSubmitServiceError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantAlert string
	}{
		{
			name:      "Service message",
			err:       &client.ServiceError{StatusCode: http.StatusBadRequest, Message: "alias taken"},
			wantAlert: "alias taken",
		},
		{
			name:      "No service message",
			err:       &client.ServiceError{StatusCode: http.StatusInternalServerError},
			wantAlert: MsgShortenFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &fakeView{url: "example.com", customText: "taken"}
			c, shortener, _ := newTestController(t, view)
			shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c.Submit(context.Background())

			alerts := view.alertList()
			require.Len(t, alerts, 1)
			assert.Contains(t, alerts[0], tt.wantAlert)
			assert.False(t, view.resultVisible)
			assert.Equal(t, StateError, c.State())

			label, enabled := view.submitState()
			assert.Equal(t, SubmitLabel, label)
			assert.True(t, enabled)
		})
	}
}

func TestSubmitTransportError(t *testing.T) {
	view := &fakeView{url: "example.com"}
	c, shortener, _ := newTestController(t, view)
	shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).
		Return(nil, &client.TransportError{Op: "shorten", Err: errors.New("connection refused")})

	c.Submit(context.Background())

	assert.Equal(t, []string{MsgRetry}, view.alertList())
	assert.False(t, view.resultVisible)

	var trErr *client.TransportError
	assert.True(t, errors.As(c.LastError(), &trErr))

	label, enabled := view.submitState()
	assert.Equal(t, SubmitLabel, label)
	assert.True(t, enabled)
	assert.True(t, c.State().Interactive())
}

func TestSubmitCanceled(t *testing.T) {
	view := &fakeView{url: "example.com"}
	c, shortener, _ := newTestController(t, view)

	ctx, cancel := context.WithCancel(context.Background())
	shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.ShortenRequest) (*models.ShortenResult, error) {
			cancel()
			return nil, &client.TransportError{Op: "shorten", Err: ctx.Err()}
		})

	c.Submit(ctx)

	assert.Empty(t, view.alertList())
	assert.False(t, view.resultVisible)
	assert.Equal(t, StateError, c.State())
	assert.ErrorIs(t, c.LastError(), context.Canceled)

	label, enabled := view.submitState()
	assert.Equal(t, SubmitLabel, label)
	assert.True(t, enabled)
}

func TestSubmitCleanupOnPanic(t *testing.T) {
	view := &fakeView{url: "example.com"}
	c, shortener, _ := newTestController(t, view)
	shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.ShortenRequest) (*models.ShortenResult, error) {
			panic("boom")
		})

	assert.Panics(t, func() { c.Submit(context.Background()) })

	label, enabled := view.submitState()
	assert.Equal(t, SubmitLabel, label)
	assert.True(t, enabled)
	assert.Equal(t, StateError, c.State())
}

func TestSubmitIgnoresReentry(t *testing.T) {
	view := &fakeView{url: "example.com"}
	c, shortener, _ := newTestController(t, view)

	shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.ShortenRequest) (*models.ShortenResult, error) {
			// Кнопку могли включить программно, повторная отправка не должна выполниться
			view.SetSubmitEnabled(true)
			c.Submit(ctx)
			return &models.ShortenResult{ShortURL: "http://x/abc"}, nil
		}).
		Times(1)

	c.Submit(context.Background())
	assert.Equal(t, StateSuccess, c.State())
}

func TestSubmitConcurrent(t *testing.T) {
	view := &fakeView{url: "example.com"}
	c, shortener, _ := newTestController(t, view)

	release := make(chan struct{})
	shortener.EXPECT().Shorten(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.ShortenRequest) (*models.ShortenResult, error) {
			<-release
			return &models.ShortenResult{ShortURL: "http://x/abc"}, nil
		}).
		Times(1)

	done := make(chan struct{})
	go func() {
		c.Submit(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return c.State() == StateSubmitting }, time.Second, time.Millisecond)
	c.Submit(context.Background())
	close(release)
	<-done

	assert.Equal(t, StateSuccess, c.State())
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name        string
		strategy    clipboard.Strategy
		copyErr     error
		wantConfirm bool
	}{
		{name: "Native success", strategy: clipboard.StrategyNative, wantConfirm: true},
		{name: "Selection success", strategy: clipboard.StrategySelection, wantConfirm: true},
		{name: "Native failure", strategy: clipboard.StrategyNative, copyErr: errors.New("denied"), wantConfirm: false},
		{name: "Selection failure", strategy: clipboard.StrategySelection, copyErr: errors.New("closed"), wantConfirm: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &fakeView{shortURL: "http://x/go/abc123"}
			c, _, copier := newTestController(t, view)

			copier.EXPECT().Copy(gomock.Any(), "http://x/go/abc123").Return(tt.copyErr)
			copier.EXPECT().Strategy().Return(tt.strategy).AnyTimes()

			c.Copy(context.Background())

			if !tt.wantConfirm {
				assert.Equal(t, CopyLabel, view.CopyLabel())
				return
			}
			assert.Equal(t, CopyConfirmLabel, view.CopyLabel())
			assert.Eventually(t, func() bool { return view.CopyLabel() == CopyLabel }, time.Second, 5*time.Millisecond)
		})
	}
}

func TestCopyWithoutShortURL(t *testing.T) {
	view := &fakeView{}
	c, _, _ := newTestController(t, view)

	c.Copy(context.Background())
	assert.Equal(t, CopyLabel, view.CopyLabel())
}

func TestCopyOverlappingTimers(t *testing.T) {
	view := &fakeView{shortURL: "http://x/abc"}
	c, _, copier := newTestController(t, view)
	copier.EXPECT().Copy(gomock.Any(), "http://x/abc").Return(nil).Times(2)

	c.Copy(context.Background())
	c.Copy(context.Background())

	// Второе нажатие запомнило подтверждение, поэтому последний таймер оставляет его на кнопке
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, CopyConfirmLabel, view.CopyLabel())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.False(t, StateSubmitting.Interactive())
	assert.True(t, StateError.Interactive())
}
