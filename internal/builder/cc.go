package builder

import (
	"os/exec"

	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/gen"
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/qobs-build/mkgen/internal/toolchain"
)

// compilerFor returns the compiler command a generator emits for a
func compilerFor(g gen.Generator, a config.Artifact) (string, error) {
	switch g := g.(type) {
	case *gen.ToolchainGen:
		return g.Driver.Command, nil
	default:
		family, err := toolchain.ForHost(a.Host)
		if err != nil {
			return "", err
		}
		return toolchain.Drivers[family].Command, nil
	}
}

// checkTools warns about commands a script needs that are not on PATH. The
// script still runs; the build tool reports the real failure.
func checkTools(s Script) {
	for _, name := range []string{s.Tool.Name, s.Compiler} {
		if _, err := exec.LookPath(name); err != nil {
			msg.Warn("%s not found on PATH, building %s will likely fail", name, s.Output)
		}
	}
}
