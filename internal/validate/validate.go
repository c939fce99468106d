// Package validate checks the shape of a project description before any
// build script is generated. Checks run in a fixed order and stop at the
// first violation, so a Result always names exactly one problem.
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/qobs-build/mkgen/internal/toolchain"
)

// ErrorKind is the fixed vocabulary of validation failures
type ErrorKind string

const (
	UnknownProperty                ErrorKind = "unknown property"
	UnknownProjectProperty         ErrorKind = "unknown project property"
	MissingRequiredProperty        ErrorKind = "missing required property"
	MissingRequiredProjectProperty ErrorKind = "missing required project property"
	InvalidProperty                ErrorKind = "invalid property"
	InvalidProjectProperty         ErrorKind = "invalid project property"
	PropertyNotString              ErrorKind = "property is not a string"
	ProjectPropertyNotString       ErrorKind = "project property is not a string"
	PropertyNotStringArray         ErrorKind = "property is not a string array"
	NoExtension                    ErrorKind = "no extension"
	CannotBePath                   ErrorKind = "cannot be path"
	NoInputFiles                   ErrorKind = "no input files"
	LibrariesWithStaticLibrary     ErrorKind = "given libraries with static-library"
)

var (
	requiredProjectProperties = []string{"title", "toolchain", "artifacts"}
	optionalProjectProperties = []string{}
	stringProjectProperties   = []string{"title"}

	requiredProperties = []string{"title", "type", "files", "outputName"}
	optionalProperties = []string{
		"outputPath",
		"compilerFlags",
		"linkerFlags",
		"includePaths",
		"libraryPaths",
		"libraries",
	}
	stringProperties      = []string{"title", "outputName", "outputPath", "compilerFlags", "linkerFlags"}
	stringArrayProperties = []string{"files", "includePaths", "libraryPaths", "libraries"}
)

// Artifact types
const (
	Application    = "application"
	DynamicLibrary = "dynamic-library"
	StaticLibrary  = "static-library"
)

// Types lists every valid artifact type
var Types = []string{Application, DynamicLibrary, StaticLibrary}

var extensionRegex = regexp.MustCompile(`\.\w`)

// Result is the outcome of a validation. Index is the position of the
// failing artifact, or -1 when the project itself is at fault.
type Result struct {
	Valid    bool
	Error    ErrorKind
	Property string
	Index    int
}

func valid() Result { return Result{Valid: true} }

func fail(kind ErrorKind, property string) Result {
	return Result{Error: kind, Property: property, Index: -1}
}

// Err converts an invalid Result into an error, nil otherwise
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Kind: r.Error, Property: r.Property, Index: r.Index}
}

func (r Result) String() string {
	if r.Valid {
		return "valid"
	}
	return r.Err().Error()
}

// Error is the error form of a failed Result
type Error struct {
	Kind     ErrorKind
	Property string
	Index    int
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("artifact %d: %s: %q", e.Index, e.Kind, e.Property)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Property)
}

type check func(cfg map[string]any) Result

// run applies checks in order and returns the first failure
func run(cfg map[string]any, checks []check) Result {
	for _, c := range checks {
		if r := c(cfg); !r.Valid {
			return r
		}
	}
	return valid()
}

var projectChecks = []check{
	unknownProperties(requiredProjectProperties, optionalProjectProperties, UnknownProjectProperty),
	requireProperties(requiredProjectProperties, MissingRequiredProjectProperty),
	checkToolchain,
	requireStrings(stringProjectProperties, ProjectPropertyNotString),
	checkArtifactList,
}

var artifactChecks = []check{
	unknownProperties(requiredProperties, optionalProperties, UnknownProperty),
	requireProperties(requiredProperties, MissingRequiredProperty),
	checkType,
	requireStrings(stringProperties, PropertyNotString),
	requireStringArrays(stringArrayProperties, PropertyNotStringArray),
	checkExtensions,
	checkOutputName,
	checkFilesNotEmpty,
	checkStaticLibraries,
}

// Validate checks a project description. Project level checks run first,
// then each artifact in order; the first failure ends validation.
func Validate(cfg map[string]any) Result {
	if r := run(cfg, projectChecks); !r.Valid {
		return r
	}
	artifacts, _ := artifactList(cfg["artifacts"])
	for i, artifact := range artifacts {
		r := ValidateArtifact(artifact)
		if !r.Valid {
			r.Index = i
			return r
		}
	}
	return valid()
}

// ValidateArtifact runs the artifact checks on a single artifact
func ValidateArtifact(artifact any) Result {
	m, ok := artifact.(map[string]any)
	if !ok {
		return fail(InvalidProperty, "artifacts")
	}
	return run(m, artifactChecks)
}

// unknownProperties rejects any key outside required and optional. Keys
// are visited in sorted order so the reported property is stable.
func unknownProperties(required, optional []string, kind ErrorKind) check {
	return func(cfg map[string]any) Result {
		keys := make([]string, 0, len(cfg))
		for k := range cfg {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !slices.Contains(required, k) && !slices.Contains(optional, k) {
				return fail(kind, k)
			}
		}
		return valid()
	}
}

func requireProperties(properties []string, kind ErrorKind) check {
	return func(cfg map[string]any) Result {
		for _, p := range properties {
			if _, ok := cfg[p]; !ok {
				return fail(kind, p)
			}
		}
		return valid()
	}
}

func requireStrings(properties []string, kind ErrorKind) check {
	return func(cfg map[string]any) Result {
		for _, p := range properties {
			v, ok := cfg[p]
			if !ok {
				continue
			}
			if _, isString := v.(string); !isString {
				return fail(kind, p)
			}
		}
		return valid()
	}
}

func requireStringArrays(properties []string, kind ErrorKind) check {
	return func(cfg map[string]any) Result {
		for _, p := range properties {
			v, ok := cfg[p]
			if !ok {
				continue
			}
			if _, isArray := StringArray(v); !isArray {
				return fail(kind, p)
			}
		}
		return valid()
	}
}

// StringArray returns v as a string slice if it is a sequence holding only
// strings
func StringArray(v any) ([]string, bool) {
	switch arr := v.(type) {
	case []string:
		return arr, true
	case []any:
		out := make([]string, len(arr))
		for i, item := range arr {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func checkToolchain(cfg map[string]any) Result {
	id, _ := cfg["toolchain"].(string)
	if !toolchain.IsToolchain(id) {
		return fail(InvalidProjectProperty, "toolchain")
	}
	return valid()
}

// artifactList returns v as a slice of artifacts. Decoded documents hold
// []any; callers building configs in code may pass []map[string]any.
func artifactList(v any) ([]any, bool) {
	switch arr := v.(type) {
	case []any:
		return arr, true
	case []map[string]any:
		out := make([]any, len(arr))
		for i, m := range arr {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func checkArtifactList(cfg map[string]any) Result {
	if _, ok := artifactList(cfg["artifacts"]); !ok {
		return fail(InvalidProjectProperty, "artifacts")
	}
	return valid()
}

func checkType(cfg map[string]any) Result {
	typ, _ := cfg["type"].(string)
	if !slices.Contains(Types, typ) {
		return fail(InvalidProperty, "type")
	}
	return valid()
}

func checkExtensions(cfg map[string]any) Result {
	files, _ := StringArray(cfg["files"])
	for _, file := range files {
		if !extensionRegex.MatchString(file) {
			return fail(NoExtension, "files")
		}
	}
	return valid()
}

func checkOutputName(cfg map[string]any) Result {
	name := cfg["outputName"].(string)
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fail(CannotBePath, "outputName")
	}
	return valid()
}

func checkFilesNotEmpty(cfg map[string]any) Result {
	files, _ := StringArray(cfg["files"])
	if len(files) == 0 {
		return fail(NoInputFiles, "files")
	}
	return valid()
}

func checkStaticLibraries(cfg map[string]any) Result {
	libraries, _ := StringArray(cfg["libraries"])
	if cfg["type"] == StaticLibrary && len(libraries) > 0 {
		return fail(LibrariesWithStaticLibrary, "libraries")
	}
	return valid()
}
