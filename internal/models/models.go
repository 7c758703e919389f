// Package models описывает формы данных, которыми клиент обменивается с сервисом сокращения ссылок.
package models

// ShortenRequest представляет тело запроса POST /api/shorten
type ShortenRequest struct {
	URL        string `json:"url"`
	CustomText string `json:"custom_text"`
}

// ShortenResult представляет успешный ответ сервиса.
// OriginalURL и CreatedAt приходят от сервиса, но для отображения не используются.
type ShortenResult struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ErrorResponse представляет тело ответа сервиса с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// URLStats представляет ответ GET /api/stats/{code}
type URLStats struct {
	OriginalURL string `json:"original_url"`
	CreatedAt   string `json:"created_at"`
	Clicks      int64  `json:"clicks"`
}
