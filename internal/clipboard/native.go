package clipboard

import (
	"context"

	atotto "github.com/atotto/clipboard"
)

// Native копирует текст в системный буфер обмена.
// Запись выполняется в отдельной горутине, ожидание прерывается отменой контекста.
type Native struct {
	write func(text string) error
}

// NewNative создает Native поверх github.com/atotto/clipboard
func NewNative() *Native {
	return &Native{write: atotto.WriteAll}
}

// Copy записывает text в системный буфер обмена
func (n *Native) Copy(ctx context.Context, text string) error {
	done := make(chan error, 1)
	go func() {
		done <- n.write(text)
	}()

	select {
	case <-ctx.Done():
		return &Error{Strategy: StrategyNative, Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			return &Error{Strategy: StrategyNative, Err: err}
		}
		return nil
	}
}

// Strategy возвращает StrategyNative
func (n *Native) Strategy() Strategy {
	return StrategyNative
}
