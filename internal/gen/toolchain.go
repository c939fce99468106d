package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/toolchain"
	"github.com/qobs-build/mkgen/internal/validate"
)

// ToolchainGen generates scripts for project artifacts. The invocation
// shape depends on the artifact type and the driver the toolchain
// resolves to.
type ToolchainGen struct {
	Toolchain string
	Driver    toolchain.Driver
	platform  string
}

// NewToolchainGen resolves toolchainID against the default driver table
func NewToolchainGen(toolchainID string) (*ToolchainGen, error) {
	return NewToolchainGenWithDrivers(toolchainID, toolchain.Drivers)
}

// NewToolchainGenWithDrivers resolves toolchainID against a caller supplied
// driver table
func NewToolchainGenWithDrivers(toolchainID string, drivers map[toolchain.Family]toolchain.Driver) (*ToolchainGen, error) {
	d, ok := toolchain.Select(toolchainID, drivers)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownToolchain, toolchainID)
	}
	return &ToolchainGen{
		Toolchain: toolchainID,
		Driver:    d,
		platform:  toolchain.Platform(toolchainID),
	}, nil
}

func (g *ToolchainGen) Tool() Tool { return ToolFor(g.Driver.Family) }

// OutputFile returns the platform file name of the artifact, inside its
// outputPath if one is set
func (g *ToolchainGen) OutputFile(a config.Artifact) (string, error) {
	name := a.OutputName
	if name == "" {
		if len(a.Files) == 0 {
			return "", ErrNoSourceFiles
		}
		var err error
		if name, err = ExecutableName(a.Files[0]); err != nil {
			return "", err
		}
	}

	switch a.Type {
	case validate.StaticLibrary:
		name = g.Driver.StaticLibraryName(name)
	case validate.DynamicLibrary:
		name = g.Driver.SharedLibraryName(g.platform, name)
	default:
		name = g.Driver.ExecutableName(name)
	}

	if a.OutputPath != "" {
		return path.Join(toSlash(a.OutputPath), name), nil
	}
	return name, nil
}

// Generate emits one of three shapes:
//
//	application:      cc <cflags> <files> <includes> -o out <link section>
//	dynamic-library:  cc <shared> <cflags> <files> <includes> -o out <link section>
//	static-library:   cc -c <cflags> <files> <includes>
//	                  ar rcs out <objects>
func (g *ToolchainGen) Generate(a config.Artifact) (string, error) {
	if len(a.Files) == 0 {
		return "", ErrNoSourceFiles
	}
	out, err := g.OutputFile(a)
	if err != nil {
		return "", err
	}

	d := g.Driver
	var commands [][]string

	switch a.Type {
	case validate.StaticLibrary:
		compile := g.command(d.CompileOnly)
		compile = append(compile, g.compileArgs(a)...)

		// compile-only steps drop objects in the working directory by
		// base name, so two sources named alike would overwrite each other
		objects := make([]string, len(a.Files))
		sources := make(map[string]string, len(a.Files))
		for i, f := range a.Files {
			obj := d.ObjectName(f)
			if prev, ok := sources[obj]; ok {
				return "", fmt.Errorf("%w: %s and %s both produce %s", ErrObjectCollision, prev, f, obj)
			}
			sources[obj] = f
			objects[i] = obj
		}
		commands = append(commands, compile, d.Archive(out, objects))
	case validate.DynamicLibrary:
		link := g.command(d.SharedLinkFlags(g.platform)...)
		link = append(link, g.compileArgs(a)...)
		link = append(link, d.Output(out)...)
		link = append(link, g.linkArgs(a)...)
		commands = append(commands, link)
	default:
		link := g.command()
		link = append(link, g.compileArgs(a)...)
		link = append(link, d.Output(out)...)
		link = append(link, g.linkArgs(a)...)
		commands = append(commands, link)
	}

	var sb strings.Builder
	writeRule(&sb, "all", commands...)
	return sb.String(), nil
}

func (g *ToolchainGen) command(flags ...string) []string {
	args := []string{g.Driver.Command}
	args = append(args, g.Driver.Preamble...)
	return append(args, flags...)
}

// compileArgs returns compiler flags, sources and include paths
func (g *ToolchainGen) compileArgs(a config.Artifact) []string {
	var args []string
	if a.CompilerFlags != "" {
		args = append(args, a.CompilerFlags)
	}
	args = append(args, a.Files...)
	for _, inc := range a.IncludePaths {
		args = append(args, g.Driver.IncludeFlag+inc)
	}
	return args
}

// linkArgs returns linker flags, library paths, libraries and the
// platform's standard flags. With libraries but no library paths the
// working directory is searched, so artifacts can link libraries built
// earlier in the same project.
func (g *ToolchainGen) linkArgs(a config.Artifact) []string {
	d := g.Driver
	var args []string
	if a.LinkerFlags != "" {
		args = append(args, a.LinkerFlags)
	}

	libraryPaths := a.LibraryPaths
	if len(libraryPaths) == 0 && len(a.Libraries) > 0 {
		libraryPaths = []string{"."}
	}
	for _, p := range libraryPaths {
		args = append(args, d.LibraryPathFlag+p)
	}
	for _, lib := range a.Libraries {
		args = append(args, d.LinkLibrary(lib))
	}
	if d.Family != toolchain.CL {
		args = append(args, toolchain.StandardFlags(g.platform)...)
	}

	if len(args) > 0 && d.LinkSeparator != "" {
		args = append([]string{d.LinkSeparator}, args...)
	}
	return args
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
