// Package console реализует страницу формы сокращения в терминале.
// Page хранит значения полей, надписи кнопок и панель результата и
// выводит изменения в io.Writer. Ввод читается построчно из io.Reader.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/InQaaaaGit/shortform/internal/controller"
)

// ErrInputClosed возвращается, когда ввод закончился
var ErrInputClosed = errors.New("input closed")

const panelRule = "----------------------------------------"

var _ controller.View = (*Page)(nil)

// Page терминальная страница формы
type Page struct {
	mu  sync.Mutex
	out io.Writer

	lines     chan string
	readErr   error
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	policy *bluemonday.Policy

	url           string
	customText    string
	submitLabel   string
	submitEnabled bool
	shortURL      string
	originalURL   string
	createdAt     string
	resultVisible bool
	copyLabel     string
}

// NewPage создает страницу и начинает читать строки из in
func NewPage(in io.Reader, out io.Writer) *Page {
	p := &Page{
		out:     out,
		lines:   make(chan string),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		policy:  bluemonday.StrictPolicy(),
	}
	go p.readLoop(in)
	return p
}

func (p *Page) readLoop(in io.Reader) {
	defer close(p.stopped)
	defer close(p.lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		case <-p.done:
			return
		}
	}
	p.mu.Lock()
	p.readErr = scanner.Err()
	p.mu.Unlock()
}

// Close прекращает передачу введенных строк. Чтение, заблокированное
// в самом io.Reader, завершится только после следующей строки или конца ввода.
func (p *Page) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// ReadLine выводит приглашение и ждет строку ввода.
// Возвращает ErrInputClosed, когда ввод закончился, или ошибку контекста.
func (p *Page) ReadLine(ctx context.Context, prompt string) (string, error) {
	p.printf("%s", prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			p.mu.Lock()
			err := p.readErr
			p.mu.Unlock()
			if err != nil {
				return "", err
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}

// Fill заполняет поля формы
func (p *Page) Fill(url, customText string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
	p.customText = customText
}

// Printf выводит произвольный текст на страницу
func (p *Page) Printf(format string, args ...any) {
	p.printf(format, args...)
}

func (p *Page) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// URLValue возвращает значение поля исходной ссылки
func (p *Page) URLValue() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// CustomTextValue возвращает значение поля псевдонима
func (p *Page) CustomTextValue() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.customText
}

func (p *Page) SetSubmitLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitLabel = label
}

// SetSubmitEnabled блокирует или разблокирует отправку.
// При блокировке выводится текущая надпись кнопки.
func (p *Page) SetSubmitEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.submitEnabled && !enabled {
		_, _ = fmt.Fprintf(p.out, "%s\n", p.submitLabel)
	}
	p.submitEnabled = enabled
}

// SubmitEnabled сообщает, доступна ли отправка
func (p *Page) SubmitEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitEnabled
}

// Alert выводит сообщение, очищенное от HTML разметки и управляющих символов
func (p *Page) Alert(message string) {
	clean := p.sanitize(message)
	p.printf("! %s\n", clean)
}

func (p *Page) sanitize(message string) string {
	return stripControl(html.UnescapeString(p.policy.Sanitize(message)))
}

// stripControl заменяет управляющие символы пробелами, чтобы ответ сервиса
// не мог передать терминалу escape-последовательность
func stripControl(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

func (p *Page) SetShortURL(shortURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shortURL = shortURL
}

func (p *Page) ShortURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shortURL
}

func (p *Page) SetOriginalURL(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.originalURL = text
}

func (p *Page) SetCreatedAt(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createdAt = text
}

func (p *Page) ShowResult() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resultVisible = true
}

// ResultVisible сообщает, показана ли панель результата
func (p *Page) ResultVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resultVisible
}

// ScrollToResult выводит панель результата, если она видима
func (p *Page) ScrollToResult() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.resultVisible {
		return
	}
	_, _ = fmt.Fprintf(p.out, "%s\nShort URL : %s\nOriginal  : %s\nCreated   : %s\n%s\n",
		panelRule, stripControl(p.shortURL), stripControl(p.originalURL), stripControl(p.createdAt), panelRule)
}

// ShowStats выводит статистику короткой ссылки
func (p *Page) ShowStats(originalURL, createdAt string, clicks int64) {
	p.printf("Original URL: %s\nCreated: %s\nClicks: %d\n", stripControl(originalURL), stripControl(createdAt), clicks)
}

func (p *Page) CopyLabel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyLabel
}

// SetCopyLabel меняет надпись кнопки копирования. Пока панель результата видима,
// каждое изменение выводится на страницу.
func (p *Page) SetCopyLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resultVisible && label != p.copyLabel {
		_, _ = fmt.Fprintf(p.out, "[%s]\n", stripControl(label))
	}
	p.copyLabel = label
}
