// Package clipboard предоставляет возможность копирования текста в буфер обмена.
// Есть две взаимоисключающие стратегии: системный буфер обмена (Native) и
// копирование через терминал escape-последовательностью OSC 52 (Selection).
// Стратегия выбирается один раз при старте функцией Detect.
package clipboard

import (
	"context"
	"fmt"
	"io"

	atotto "github.com/atotto/clipboard"
)

// Strategy обозначает способ копирования
type Strategy string

const (
	// StrategyNative системный буфер обмена, запись выполняется асинхронно
	StrategyNative Strategy = "native"
	// StrategySelection синхронная запись через терминал
	StrategySelection Strategy = "osc52"
)

// Mode задает выбор стратегии в конфигурации
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeNative Mode = "native"
	ModeOSC52  Mode = "osc52"
)

// Copier копирует текст в буфер обмена
type Copier interface {
	Copy(ctx context.Context, text string) error
	Strategy() Strategy
}

// Available сообщает, доступен ли системный буфер обмена в текущем окружении
func Available() bool {
	return !atotto.Unsupported
}

// Detect выбирает реализацию Copier для указанного режима.
// В режиме auto используется системный буфер обмена, если он доступен, иначе OSC 52 в out.
func Detect(mode Mode, out io.Writer) (Copier, error) {
	return detect(mode, Available(), out)
}

func detect(mode Mode, nativeAvailable bool, out io.Writer) (Copier, error) {
	switch mode {
	case ModeAuto, "":
		if nativeAvailable {
			return NewNative(), nil
		}
		return NewSelection(out), nil
	case ModeNative:
		if !nativeAvailable {
			return nil, ErrUnavailable
		}
		return NewNative(), nil
	case ModeOSC52:
		return NewSelection(out), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
