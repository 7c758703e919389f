// Package textutil содержит небольшие чистые функции для подготовки текста к отображению.
package textutil

// Ellipsis добавляется к обрезанному тексту
const Ellipsis = "..."

// Truncate возвращает text без изменений, если его длина не превышает maxLength символов,
// иначе первые maxLength символов с суффиксом Ellipsis.
// Длина считается в рунах, поэтому многобайтовые символы не разрезаются.
func Truncate(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + Ellipsis
}
