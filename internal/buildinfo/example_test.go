package buildinfo_test

import (
	"fmt"
	"os"

	"github.com/InQaaaaGit/shortform/internal/buildinfo"
)

// ExampleNewInfo демонстрирует информацию о сборке без заданных значений
func ExampleNewInfo() {
	info := buildinfo.NewInfo("", "", "")
	info.Fprint(os.Stdout)

	// Output:
	// Build version: N/A
	// Build date: N/A
	// Build commit: N/A
}

// ExampleInfo_String демонстрирует получение строкового представления информации о сборке
func ExampleInfo_String() {
	info := buildinfo.NewInfo("v1.0.0", "2024-01-01", "abc123")
	fmt.Println(info.String())

	// Output:
	// Version: v1.0.0, Date: 2024-01-01, Commit: abc123
}
