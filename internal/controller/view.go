package controller

// View описывает страницу, которой управляет контроллер: поля ввода, кнопки и панель результата.
// Методы могут вызываться из разных горутин (восстановление кнопки копирования идет по таймеру),
// поэтому реализация должна быть потокобезопасной.
type View interface {
	// URLValue возвращает содержимое поля с исходной ссылкой
	URLValue() string
	// CustomTextValue возвращает содержимое поля с желаемым псевдонимом
	CustomTextValue() string

	SetSubmitLabel(label string)
	SetSubmitEnabled(enabled bool)

	// Alert показывает пользователю блокирующее сообщение
	Alert(message string)

	// SetShortURL заполняет поле с короткой ссылкой (только для чтения)
	SetShortURL(shortURL string)
	// ShortURL возвращает текущее значение поля с короткой ссылкой
	ShortURL() string
	SetOriginalURL(text string)
	SetCreatedAt(text string)
	// ShowResult делает панель результата видимой
	ShowResult()
	// ScrollToResult прокручивает страницу к панели результата
	ScrollToResult()

	CopyLabel() string
	SetCopyLabel(label string)
}
