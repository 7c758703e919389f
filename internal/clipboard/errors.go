package clipboard

import (
	"errors"
	"fmt"
)

// ErrUnavailable возвращается, когда системный буфер обмена недоступен
var ErrUnavailable = errors.New("system clipboard is unavailable")

// ErrUnknownMode возвращается для неизвестного режима выбора стратегии
var ErrUnknownMode = errors.New("unknown clipboard mode")

// Error описывает неудачное копирование
type Error struct {
	Strategy Strategy
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clipboard %s: %v", e.Strategy, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
