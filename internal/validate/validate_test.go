package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifact() map[string]any {
	return map[string]any{
		"title":      "My App",
		"type":       "application",
		"files":      []any{"main.c", "src/util.c"},
		"outputName": "app",
	}
}

func project(artifacts ...any) map[string]any {
	if artifacts == nil {
		artifacts = []any{}
	}
	return map[string]any{
		"title":     "Project",
		"toolchain": "linux-make-gcc-linux-x64",
		"artifacts": artifacts,
	}
}

func requireFailure(t *testing.T, r Result, kind ErrorKind, property string) {
	t.Helper()
	require.False(t, r.Valid)
	assert.Equal(t, kind, r.Error)
	assert.Equal(t, property, r.Property)
}

func TestValidate_Valid(t *testing.T) {
	full := artifact()
	full["outputPath"] = "bin"
	full["compilerFlags"] = "-Wall"
	full["linkerFlags"] = "-s"
	full["includePaths"] = []any{"include"}
	full["libraryPaths"] = []any{"lib"}
	full["libraries"] = []any{"m"}

	r := Validate(project(artifact(), full))
	assert.True(t, r.Valid)
	assert.NoError(t, r.Err())
	assert.Equal(t, "valid", r.String())

	// an empty artifact list is accepted and simply produces nothing
	assert.True(t, Validate(project()).Valid)
}

func TestValidate_Project(t *testing.T) {
	t.Run("unknown property fires first", func(t *testing.T) {
		cfg := project()
		delete(cfg, "title")
		cfg["toolchain"] = "bogus"
		cfg["extra"] = 1
		r := Validate(cfg)
		requireFailure(t, r, UnknownProjectProperty, "extra")
		assert.Equal(t, -1, r.Index)
	})

	t.Run("missing required in declaration order", func(t *testing.T) {
		for _, tt := range []struct {
			remove []string
			want   string
		}{
			{[]string{"title"}, "title"},
			{[]string{"toolchain"}, "toolchain"},
			{[]string{"artifacts"}, "artifacts"},
			{[]string{"toolchain", "artifacts"}, "toolchain"},
			{[]string{"title", "toolchain", "artifacts"}, "title"},
		} {
			cfg := project()
			for _, k := range tt.remove {
				delete(cfg, k)
			}
			requireFailure(t, Validate(cfg), MissingRequiredProjectProperty, tt.want)
		}
	})

	t.Run("invalid toolchain", func(t *testing.T) {
		cfg := project()
		cfg["toolchain"] = "linux-gcc"
		requireFailure(t, Validate(cfg), InvalidProjectProperty, "toolchain")

		cfg["toolchain"] = 12
		requireFailure(t, Validate(cfg), InvalidProjectProperty, "toolchain")
	})

	t.Run("title not a string", func(t *testing.T) {
		cfg := project()
		cfg["title"] = []any{"x"}
		requireFailure(t, Validate(cfg), ProjectPropertyNotString, "title")

		cfg["title"] = nil
		requireFailure(t, Validate(cfg), ProjectPropertyNotString, "title")
	})

	t.Run("artifacts not a sequence", func(t *testing.T) {
		cfg := project()
		cfg["artifacts"] = map[string]any{}
		requireFailure(t, Validate(cfg), InvalidProjectProperty, "artifacts")
	})

	t.Run("project errors stop artifact checks", func(t *testing.T) {
		cfg := project(map[string]any{"bogus": true})
		cfg["toolchain"] = "nope"
		requireFailure(t, Validate(cfg), InvalidProjectProperty, "toolchain")
	})
}

func TestValidate_Artifact(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a map[string]any)
		kind     ErrorKind
		property string
	}{
		{"unknown property", func(a map[string]any) { a["host"] = "linux" }, UnknownProperty, "host"},
		{"unknown before missing", func(a map[string]any) {
			delete(a, "title")
			a["zzz"] = 1
		}, UnknownProperty, "zzz"},
		{"missing title", func(a map[string]any) { delete(a, "title") }, MissingRequiredProperty, "title"},
		{"missing type", func(a map[string]any) { delete(a, "type") }, MissingRequiredProperty, "type"},
		{"missing files", func(a map[string]any) { delete(a, "files") }, MissingRequiredProperty, "files"},
		{"missing outputName", func(a map[string]any) { delete(a, "outputName") }, MissingRequiredProperty, "outputName"},
		{"invalid type", func(a map[string]any) { a["type"] = "shared-library" }, InvalidProperty, "type"},
		{"type not a string", func(a map[string]any) { a["type"] = 3 }, InvalidProperty, "type"},
		{"title not a string", func(a map[string]any) { a["title"] = 1.5 }, PropertyNotString, "title"},
		{"outputPath not a string", func(a map[string]any) { a["outputPath"] = []any{"bin"} }, PropertyNotString, "outputPath"},
		{"linkerFlags not a string", func(a map[string]any) { a["linkerFlags"] = []any{"-s"} }, PropertyNotString, "linkerFlags"},
		{"files not an array", func(a map[string]any) { a["files"] = "main.c" }, PropertyNotStringArray, "files"},
		{"libraries holds a number", func(a map[string]any) { a["libraries"] = []any{"m", 4} }, PropertyNotStringArray, "libraries"},
		{"includePaths not an array", func(a map[string]any) { a["includePaths"] = map[string]any{} }, PropertyNotStringArray, "includePaths"},
		{"file without extension", func(a map[string]any) { a["files"] = []any{"main.c", "Makefile"} }, NoExtension, "files"},
		{"dot without word character", func(a map[string]any) { a["files"] = []any{"main."} }, NoExtension, "files"},
		{"outputName with slash", func(a map[string]any) { a["outputName"] = "bin/app" }, CannotBePath, "outputName"},
		{"outputName with backslash", func(a map[string]any) { a["outputName"] = `bin\app` }, CannotBePath, "outputName"},
		{"outputName dot", func(a map[string]any) { a["outputName"] = "." }, CannotBePath, "outputName"},
		{"outputName dotdot", func(a map[string]any) { a["outputName"] = ".." }, CannotBePath, "outputName"},
		{"no input files", func(a map[string]any) { a["files"] = []any{} }, NoInputFiles, "files"},
		{"static library with libraries", func(a map[string]any) {
			a["type"] = "static-library"
			a["libraries"] = []any{"m"}
		}, LibrariesWithStaticLibrary, "libraries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := artifact()
			tt.mutate(a)
			r := Validate(project(a))
			requireFailure(t, r, tt.kind, tt.property)
			assert.Equal(t, 0, r.Index)
		})
	}
}

func TestValidate_StaticLibraryWithoutLibraries(t *testing.T) {
	a := artifact()
	a["type"] = "static-library"
	a["libraries"] = []any{}
	assert.True(t, Validate(project(a)).Valid)

	delete(a, "libraries")
	assert.True(t, Validate(project(a)).Valid)
}

func TestValidate_FailFastAcrossArtifacts(t *testing.T) {
	second := artifact()
	second["type"] = "plugin"
	third := artifact()
	third["extra"] = true

	r := Validate(project(artifact(), second, third))
	requireFailure(t, r, InvalidProperty, "type")
	assert.Equal(t, 1, r.Index)

	var verr *Error
	require.ErrorAs(t, r.Err(), &verr)
	assert.Equal(t, InvalidProperty, verr.Kind)
	assert.Equal(t, `artifact 1: invalid property: "type"`, verr.Error())
}

func TestValidate_ArtifactNotObject(t *testing.T) {
	r := Validate(project(artifact(), "main.c"))
	requireFailure(t, r, InvalidProperty, "artifacts")
	assert.Equal(t, 1, r.Index)
}

func TestValidate_TypedArtifactSlice(t *testing.T) {
	cfg := project()
	cfg["artifacts"] = []map[string]any{artifact()}
	assert.True(t, Validate(cfg).Valid)

	bad := artifact()
	bad["type"] = "plugin"
	cfg["artifacts"] = []map[string]any{artifact(), bad}
	r := Validate(cfg)
	requireFailure(t, r, InvalidProperty, "type")
	assert.Equal(t, 1, r.Index)

	cfg["artifacts"] = []string{"main.c"}
	requireFailure(t, Validate(cfg), InvalidProjectProperty, "artifacts")
}

func TestValidate_Idempotent(t *testing.T) {
	a := artifact()
	a["outputName"] = "../app"
	cfg := project(a)
	assert.Equal(t, Validate(cfg), Validate(cfg))
}

func TestStringArray(t *testing.T) {
	got, ok := StringArray([]string{"a"})
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, got)

	got, ok = StringArray([]any{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok = StringArray([]any{"a", nil})
	assert.False(t, ok)
	_, ok = StringArray("a")
	assert.False(t, ok)
}
