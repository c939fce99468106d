// Package gen turns artifact descriptions into build scripts. Every script
// has a single default target that recompiles all sources in one go.
package gen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/toolchain"
)

var (
	ErrInvalidHost      = toolchain.ErrInvalidHost
	ErrUnknownToolchain = toolchain.ErrUnknownToolchain
	ErrNoSourceFiles    = errors.New("no source files")
	ErrMissingExtension = errors.New("source file has no extension")
	ErrObjectCollision  = errors.New("sources compile to the same object file")
)

// Generator produces the build script for one artifact
type Generator interface {
	Generate(a config.Artifact) (string, error)
	// OutputFile is the path of the file the script builds, relative to
	// the script's directory
	OutputFile(a config.Artifact) (string, error)
	Tool() Tool
}

// New returns the generator for a toolchain. An empty toolchain selects
// the host-based generator used by single artifact configs.
func New(toolchainID string) (Generator, error) {
	if toolchainID == "" {
		return HostGen{}, nil
	}
	g, err := NewToolchainGen(toolchainID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

var executableNameRegex = regexp.MustCompile(`([^/]+)\.\w+$`)

// ExecutableName derives an output name from a source file by dropping its
// directory and extension
func ExecutableName(sourceFile string) (string, error) {
	m := executableNameRegex.FindStringSubmatch(sourceFile)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrMissingExtension, sourceFile)
	}
	return m[1], nil
}

// HostGen generates scripts for artifacts that select their compiler by
// host. It only emits a compile-and-link step for an application; type,
// linker settings and outputPath are not consulted.
type HostGen struct{}

func (HostGen) Tool() Tool { return Make }

func (HostGen) Generate(a config.Artifact) (string, error) { return Generate(a) }

func (HostGen) OutputFile(a config.Artifact) (string, error) {
	if a.OutputName != "" {
		return a.OutputName, nil
	}
	if len(a.Files) == 0 {
		return "", ErrNoSourceFiles
	}
	return ExecutableName(a.Files[0])
}

// Generate emits the host-based build script for a:
//
//	all:
//		gcc main.c util.c -Iinclude -o app
func Generate(a config.Artifact) (string, error) {
	family, err := toolchain.ForHost(a.Host)
	if err != nil {
		return "", err
	}

	if len(a.Files) == 0 {
		return "", ErrNoSourceFiles
	}

	sourceFiles := strings.Join(a.Files, " ")
	executableName := a.OutputName
	if executableName == "" {
		executableName, err = ExecutableName(a.Files[0])
		if err != nil {
			return "", err
		}
	}

	var extraFlags string
	if len(a.IncludePaths) > 0 {
		extraFlags += " -I" + strings.Join(a.IncludePaths, " -I")
	}
	if flags := toolchain.StandardFlags(toolchain.Platform(a.Host)); len(flags) > 0 {
		extraFlags += " " + strings.Join(flags, " ")
	}

	var sb strings.Builder
	writeln(&sb, "all:")
	writeln(&sb, "\t", toolchain.Drivers[family].Command, " ", sourceFiles, extraFlags, " -o ", executableName)
	return sb.String(), nil
}
