package toolchain

import (
	"path"
	"strings"
)

// Driver is the invocation template of a compiler family: the command names
// and flag spellings a generator needs to emit compile, archive and link
// steps.
type Driver struct {
	Family  Family
	Command string
	// Preamble is passed before anything else on every compiler invocation
	Preamble []string

	CompileOnly     string
	OutputFlag      string // cl glues it to the path
	IncludeFlag     string
	LibraryPathFlag string
	LinkSeparator   string // starts the linker section of a cl command line
	SharedFlags     []string
	ObjectExt       string

	Archiver      []string
	ArchiveOutput string // empty means the archive path is a plain argument
}

// Drivers is the default family -> invocation table
var Drivers = map[Family]Driver{
	GCC: {
		Family:          GCC,
		Command:         "gcc",
		CompileOnly:     "-c",
		OutputFlag:      "-o",
		IncludeFlag:     "-I",
		LibraryPathFlag: "-L",
		SharedFlags:     []string{"-shared", "-fPIC"},
		ObjectExt:       ".o",
		Archiver:        []string{"ar", "rcs"},
	},
	Clang: {
		Family:          Clang,
		Command:         "clang",
		CompileOnly:     "-c",
		OutputFlag:      "-o",
		IncludeFlag:     "-I",
		LibraryPathFlag: "-L",
		SharedFlags:     []string{"-shared", "-fPIC"},
		ObjectExt:       ".o",
		Archiver:        []string{"ar", "rcs"},
	},
	CL: {
		Family:          CL,
		Command:         "cl",
		Preamble:        []string{"/nologo"},
		CompileOnly:     "/c",
		OutputFlag:      "/Fe",
		IncludeFlag:     "/I",
		LibraryPathFlag: "/LIBPATH:",
		LinkSeparator:   "/link",
		SharedFlags:     []string{"/LD"},
		ObjectExt:       ".obj",
		Archiver:        []string{"lib", "/nologo"},
		ArchiveOutput:   "/OUT:",
	},
}

// Output returns the arguments naming the linked output file
func (d Driver) Output(file string) []string {
	if d.Family == CL {
		return []string{d.OutputFlag + file}
	}
	return []string{d.OutputFlag, file}
}

// Archive returns the archiver command line producing lib from objects
func (d Driver) Archive(lib string, objects []string) []string {
	args := append([]string{}, d.Archiver...)
	if d.ArchiveOutput != "" {
		args = append(args, d.ArchiveOutput+lib)
	} else {
		args = append(args, lib)
	}
	return append(args, objects...)
}

// LinkLibrary returns the argument linking against the named library
func (d Driver) LinkLibrary(name string) string {
	if d.Family == CL {
		if strings.HasSuffix(name, ".lib") {
			return name
		}
		return name + ".lib"
	}
	return "-l" + name
}

// SharedLinkFlags returns the flags producing a shared object on platform
func (d Driver) SharedLinkFlags(platform string) []string {
	if d.Family != CL && platform == "darwin" {
		return []string{"-dynamiclib"}
	}
	return d.SharedFlags
}

// ObjectName returns the object file a compile-only step leaves in the
// working directory for source
func (d Driver) ObjectName(source string) string {
	base := path.Base(strings.ReplaceAll(source, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base)) + d.ObjectExt
}

// ExecutableName returns the file name of an application called name
func (d Driver) ExecutableName(name string) string {
	if d.Family == CL && !strings.HasSuffix(name, ".exe") {
		return name + ".exe"
	}
	return name
}

// StaticLibraryName returns the file name of a static library called name
func (d Driver) StaticLibraryName(name string) string {
	if d.Family == CL {
		return name + ".lib"
	}
	return "lib" + name + ".a"
}

// SharedLibraryName returns the file name of a dynamic library called name
func (d Driver) SharedLibraryName(platform, name string) string {
	switch {
	case d.Family == CL:
		return name + ".dll"
	case platform == "darwin":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}
