package gen

import (
	"context"
	"os"
	"os/exec"

	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/qobs-build/mkgen/internal/toolchain"
)

// Tool is the build tool a generated script is written for
type Tool struct {
	Name string
	// Args precede the script file name on the command line
	Args []string
}

var (
	Make  = Tool{Name: "make", Args: []string{"-f"}}
	NMake = Tool{Name: "nmake", Args: []string{"/nologo", "/f"}}
)

// ToolFor returns the build tool that goes with a compiler family
func ToolFor(f toolchain.Family) Tool {
	if f == toolchain.CL {
		return NMake
	}
	return Make
}

// Command returns the command line running script
func (t Tool) Command(script string) []string {
	args := append([]string{t.Name}, t.Args...)
	return append(args, script)
}

// Invoke runs script in dir, indenting the tool's output
func (t Tool) Invoke(ctx context.Context, dir, script string) error {
	args := t.Command(script)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &msg.IndentWriter{Indent: "  ", W: os.Stdout}
	cmd.Stderr = &msg.IndentWriter{Indent: "  ", W: os.Stderr}

	return cmd.Run()
}
