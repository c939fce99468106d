package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/qobs-build/mkgen/internal/toolchain"
)

// Env is the environment {{ }} expressions in config strings are evaluated
// against
type Env struct {
	TargetOS   string            `expr:"target_os"`
	TargetArch string            `expr:"target_arch"`
	Toolchain  string            `expr:"toolchain"`
	Compiler   string            `expr:"compiler"`
	Environ    map[string]string `expr:"environ"`
}

var goarchNames = map[string]string{
	"386":   "x86",
	"amd64": "x64",
}

// NewEnv describes the machine mkgen runs on
func NewEnv() Env {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			environ[e[:i]] = e[i+1:]
		}
	}

	arch, ok := goarchNames[runtime.GOARCH]
	if !ok {
		arch = runtime.GOARCH
	}
	targetOS := runtime.GOOS
	if targetOS == "windows" {
		targetOS = "win32"
	}

	return Env{
		TargetOS:   targetOS,
		TargetArch: arch,
		Environ:    environ,
	}
}

// EnvFor describes the target a document builds for: its toolchain for
// project documents, its host for artifact documents. Unknown identifiers
// leave the host machine description in place; validation reports them.
func EnvFor(doc *Document) Env {
	env := NewEnv()
	m := doc.Project()
	if m == nil {
		env.Compiler = toolchain.GCC.String()
		return env
	}

	if doc.Form == FormProject {
		id, _ := m["toolchain"].(string)
		if family, ok := toolchain.ForToolchain(id); ok {
			env.Toolchain = id
			env.TargetOS = toolchain.Platform(id)
			if arch := toolchain.Arch(id); arch != "" {
				env.TargetArch = arch
			}
			env.Compiler = family.String()
		}
		return env
	}

	host, _ := m["host"].(string)
	if family, err := toolchain.ForHost(host); err == nil {
		if host != "" {
			env.TargetOS = toolchain.Platform(host)
		}
		env.Compiler = family.String()
	}
	return env
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// expand substitutes the value of every {{ }} expression in s
func (env Env) expand(s string) (string, error) {
	var failed error
	out := exprRegex.ReplaceAllStringFunc(s, func(m string) string {
		if failed != nil {
			return m
		}
		src := strings.TrimSpace(exprRegex.FindStringSubmatch(m)[1])
		program, err := expr.Compile(src, expr.Env(env))
		if err == nil {
			var v any
			if v, err = expr.Run(program, env); err == nil {
				return fmt.Sprint(v)
			}
		}
		failed = fmt.Errorf("expression %q: %w", src, err)
		return m
	})
	return out, failed
}

// evaluate expands expressions in every string value under v, in place.
// Map keys are never expanded. Errors name the key or index path.
func (env Env) evaluate(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return env.expand(v)
	case map[string]any:
		for k, item := range v {
			out, err := env.evaluate(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			v[k] = out
		}
	case []any:
		for i, item := range v {
			out, err := env.evaluate(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			v[i] = out
		}
	}
	return v, nil
}

// Evaluate replaces every {{ }} expression in the document's strings
func (d *Document) Evaluate(env Env) error {
	raw, err := env.evaluate(d.Raw)
	if err != nil {
		return fmt.Errorf("evaluating config: %w", err)
	}
	d.Raw = raw
	return nil
}
