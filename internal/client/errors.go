package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingShortURL возвращается, когда успешный ответ не содержит short_url
var ErrMissingShortURL = errors.New("response has no short_url")

// ErrEmptyCode возвращается при запросе статистики без короткого кода
var ErrEmptyCode = errors.New("empty short code")

// ServiceError описывает ответ сервиса с неуспешным HTTP статусом.
// Message содержит текст из поля error, если сервис его прислал.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service responded with status %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("service responded with status %d: %s", e.StatusCode, e.Message)
}

// TransportError описывает сбой при отправке запроса или разборе ответа
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
