package clipboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// Selection копирует текст, отправляя терминалу последовательность OSC 52.
// Терминал сам помещает переданный текст в буфер обмена.
type Selection struct {
	mu  sync.Mutex
	out io.Writer
}

// NewSelection создает Selection, пишущий в out
func NewSelection(out io.Writer) *Selection {
	return &Selection{out: out}
}

// Copy синхронно пишет последовательность OSC 52 с текстом в base64
func (s *Selection) Copy(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		return &Error{Strategy: StrategySelection, Err: io.ErrClosedPipe}
	}
	if _, err := fmt.Fprint(s.out, osc52(text)); err != nil {
		return &Error{Strategy: StrategySelection, Err: err}
	}
	return nil
}

// Strategy возвращает StrategySelection
func (s *Selection) Strategy() Strategy {
	return StrategySelection
}

func osc52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}
