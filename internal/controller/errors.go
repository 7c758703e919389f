package controller

import "errors"

// ValidationError описывает некорректный ввод пользователя
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrEmptyURL возвращается, когда поле с исходной ссылкой пустое
var ErrEmptyURL = &ValidationError{Field: "url", Message: MsgInvalidURL}

// ErrSubmitInFlight возвращается при повторной отправке до завершения текущего запроса
var ErrSubmitInFlight = errors.New("shorten request already in flight")

// ErrNothingToCopy возвращается, когда короткая ссылка еще не показана
var ErrNothingToCopy = errors.New("no short URL to copy")
