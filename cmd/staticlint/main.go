// Command staticlint запускает набор статических анализаторов для кода клиента:
// стандартные проходы golang.org/x/tools, анализаторы staticcheck, go-critic,
// errcheck, bodyclose и собственный анализатор osexit.
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/go-critic/go-critic/checkers/analyzer"
	"github.com/kisielk/errcheck/errcheck"
	"github.com/timakin/bodyclose/passes/bodyclose"
)

func main() {
	multichecker.Main(analyzers()...)
}

// analyzers возвращает полный список анализаторов
func analyzers() []*analysis.Analyzer {
	checks := []*analysis.Analyzer{
		OsExitAnalyzer,

		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,

		analyzer.Analyzer,
		errcheck.Analyzer,
		bodyclose.Analyzer,
	}

	checks = appendLint(checks, staticcheck.Analyzers, func(name string) bool {
		return strings.HasPrefix(name, "SA")
	})
	checks = appendLint(checks, simple.Analyzers, func(string) bool { return true })
	checks = appendLint(checks, stylecheck.Analyzers, func(string) bool { return true })

	return checks
}

func appendLint(dst []*analysis.Analyzer, src []*lint.Analyzer, keep func(name string) bool) []*analysis.Analyzer {
	for _, a := range src {
		if keep(a.Analyzer.Name) {
			dst = append(dst, a.Analyzer)
		}
	}
	return dst
}
