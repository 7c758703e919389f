// Package buildinfo хранит информацию о сборке клиента: версию, дату и commit.
// Значения передаются через -ldflags при сборке cmd/shortener.
package buildinfo

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

const notAvailable = "N/A"

// Info содержит информацию о сборке приложения
type Info struct {
	Version string
	Date    string
	Commit  string
}

// NewInfo создает информацию о сборке, подставляя N/A вместо пустых значений
func NewInfo(version, date, commit string) *Info {
	return &Info{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}

// Fprint выводит информацию о сборке в w
func (info *Info) Fprint(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n", info.Version, info.Date, info.Commit)
}

// Fields возвращает информацию о сборке в виде полей лога
func (info *Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", info.Version),
		zap.String("build_date", info.Date),
		zap.String("commit", info.Commit),
	}
}

// String возвращает строковое представление информации о сборке
func (info *Info) String() string {
	return fmt.Sprintf("Version: %s, Date: %s, Commit: %s", info.Version, info.Date, info.Commit)
}
