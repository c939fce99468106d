// Package toolchain classifies toolchain and host identifiers into compiler
// families and describes how each family's driver is invoked.
package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidHost      = errors.New("invalid host")
	ErrUnknownToolchain = errors.New("unknown toolchain")
)

// Family is the class of compiler driver an identifier resolves to
type Family int

const (
	Unknown Family = iota
	CL
	Clang
	GCC
)

func (f Family) String() string {
	switch f {
	case CL:
		return "cl"
	case Clang:
		return "clang"
	case GCC:
		return "gcc"
	default:
		return "unknown"
	}
}

// ParseFamily is the inverse of Family.String
func ParseFamily(s string) (Family, bool) {
	for _, f := range []Family{CL, Clang, GCC} {
		if f.String() == s {
			return f, true
		}
	}
	return Unknown, false
}

// vocabulary marks which input surface accepts an identifier. Project
// configs name a toolchain, single artifact configs name a host.
type vocabulary uint8

const (
	vocabToolchain vocabulary = 1 << iota
	vocabHost
)

type identifier struct {
	id     string
	family Family
	vocab  vocabulary
}

// identifiers is the single classification table for both vocabularies,
// in the order they are listed to users.
var identifiers = []identifier{
	{"linux", GCC, vocabToolchain | vocabHost},
	{"linux-make-clang-linux-x86", Clang, vocabToolchain},
	{"linux-make-clang-linux-x64", Clang, vocabToolchain},
	{"linux-make-gcc-linux-x86", GCC, vocabToolchain},
	{"linux-make-gcc-linux-x64", GCC, vocabToolchain},
	{"darwin", Clang, vocabToolchain | vocabHost},
	{"darwin-make-clang-darwin-x86", Clang, vocabToolchain},
	{"darwin-make-clang-darwin-x64", Clang, vocabToolchain},
	{"darwin-make-gcc-darwin-x86", GCC, vocabToolchain},
	{"darwin-make-gcc-darwin-x64", GCC, vocabToolchain},
	{"win32", CL, vocabToolchain},
	{"win32-make-cl-win32-x86", CL, vocabToolchain},
	{"win32-make-cl-win32-x64", CL, vocabToolchain},
	{"freebsd", Clang, vocabToolchain | vocabHost},
	{"freebsd-make-clang-freebsd-x86", Clang, vocabToolchain},
	{"freebsd-make-clang-freebsd-x64", Clang, vocabToolchain},
	{"freebsd-make-gcc-freebsd-x64", GCC, vocabToolchain},
	{"darwin-clang", Clang, vocabHost},
	{"linux-clang", Clang, vocabHost},
	{"linux-gcc", GCC, vocabHost},
}

func lookup(id string, vocab vocabulary) (Family, bool) {
	for _, ident := range identifiers {
		if ident.id == id && ident.vocab&vocab != 0 {
			return ident.family, true
		}
	}
	return Unknown, false
}

func list(vocab vocabulary) []string {
	var ids []string
	for _, ident := range identifiers {
		if ident.vocab&vocab != 0 {
			ids = append(ids, ident.id)
		}
	}
	return ids
}

// Toolchains returns every toolchain identifier accepted by project configs
func Toolchains() []string { return list(vocabToolchain) }

// Hosts returns every host identifier accepted by single artifact configs
func Hosts() []string { return list(vocabHost) }

// IsToolchain reports whether id is a known toolchain identifier
func IsToolchain(id string) bool {
	_, ok := lookup(id, vocabToolchain)
	return ok
}

// ForToolchain classifies a toolchain identifier by exact match. The second
// result is false for identifiers outside every family.
func ForToolchain(id string) (Family, bool) {
	return lookup(id, vocabToolchain)
}

// ForHost classifies a host identifier. An empty host defaults to GCC.
func ForHost(host string) (Family, error) {
	if host == "" {
		return GCC, nil
	}
	if f, ok := lookup(host, vocabHost); ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidHost, host)
}

// Select resolves toolchain to its family and returns the matching entry of
// table. It never inspects the entries, so callers decide what a family
// maps to.
func Select[T any](toolchain string, table map[Family]T) (T, bool) {
	var zero T
	f, ok := ForToolchain(toolchain)
	if !ok {
		return zero, false
	}
	v, ok := table[f]
	return v, ok
}

// Platform returns the operating system prefix of a toolchain or host
// identifier, e.g. "freebsd" for "freebsd-make-gcc-freebsd-x64".
func Platform(id string) string {
	platform, _, _ := strings.Cut(id, "-")
	return platform
}

// Arch returns the architecture suffix of a toolchain identifier, or "" for
// the short platform-only identifiers.
func Arch(id string) string {
	for _, arch := range []string{"x86", "x64"} {
		if strings.HasSuffix(id, "-"+arch) {
			return arch
		}
	}
	return ""
}

var standardFlags = map[string][]string{
	"freebsd": {"-lm"},
}

// StandardFlags returns the link flags always appended on a platform
func StandardFlags(platform string) []string {
	return standardFlags[platform]
}
