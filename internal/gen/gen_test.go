package gen

import (
	"testing"

	"github.com/qobs-build/mkgen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		artifact config.Artifact
		want     string
	}{
		{
			"default host is gcc",
			config.Artifact{Files: []string{"main.c"}, OutputName: "app"},
			"all:\n\tgcc main.c -o app\n",
		},
		{
			"freebsd links libm",
			config.Artifact{Files: []string{"math.c"}, Host: "freebsd"},
			"all:\n\tclang math.c -lm -o math\n",
		},
		{
			"include paths before output",
			config.Artifact{Files: []string{"a.c"}, IncludePaths: []string{"include"}},
			"all:\n\tgcc a.c -Iinclude -o a\n",
		},
		{
			"several sources and includes keep order",
			config.Artifact{
				Files:        []string{"linked.c", "source/mylibrary.c"},
				Host:         "linux-clang",
				IncludePaths: []string{"include", "vendor/include"},
				OutputName:   "linked",
			},
			"all:\n\tclang linked.c source/mylibrary.c -Iinclude -Ivendor/include -o linked\n",
		},
		{
			"name derived from nested source",
			config.Artifact{Files: []string{"src/app/tool.cpp"}, Host: "linux-gcc"},
			"all:\n\tgcc src/app/tool.cpp -o tool\n",
		},
		{
			"unused properties are ignored",
			config.Artifact{
				Files:        []string{"main.c"},
				Host:         "darwin",
				Type:         "static-library",
				LinkerFlags:  "-s",
				Libraries:    []string{"z"},
				LibraryPaths: []string{"lib"},
				OutputPath:   "bin",
			},
			"all:\n\tclang main.c -o main\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.artifact)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(config.Artifact{Files: []string{}})
	assert.ErrorIs(t, err, ErrNoSourceFiles)

	_, err = Generate(config.Artifact{})
	assert.ErrorIs(t, err, ErrNoSourceFiles)

	_, err = Generate(config.Artifact{Files: []string{"main.c"}, Host: "bogus-host"})
	assert.ErrorIs(t, err, ErrInvalidHost)

	// the host is checked before the sources
	_, err = Generate(config.Artifact{Host: "bogus-host"})
	assert.ErrorIs(t, err, ErrInvalidHost)

	_, err = Generate(config.Artifact{Files: []string{"Makefile"}})
	assert.ErrorIs(t, err, ErrMissingExtension)

	// an explicit output name never looks at the first file
	_, err = Generate(config.Artifact{Files: []string{"Makefile"}, OutputName: "x"})
	assert.NoError(t, err)
}

func TestExecutableName(t *testing.T) {
	for in, want := range map[string]string{
		"main.c":           "main",
		"src/main.c":       "main",
		"a/b/c/lib.test.c": "lib.test",
		"./x.cc":           "x",
	} {
		got, err := ExecutableName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"main", "dir.d/main", "main."} {
		_, err := ExecutableName(in)
		assert.ErrorIs(t, err, ErrMissingExtension, in)
	}
}

func TestNew(t *testing.T) {
	g, err := New("")
	require.NoError(t, err)
	assert.IsType(t, HostGen{}, g)
	assert.Equal(t, Make, g.Tool())

	g, err = New("win32")
	require.NoError(t, err)
	assert.Equal(t, NMake, g.Tool())

	_, err = New("amiga")
	assert.ErrorIs(t, err, ErrUnknownToolchain)
}

func TestHostGen_OutputFile(t *testing.T) {
	var g HostGen
	out, err := g.OutputFile(config.Artifact{Files: []string{"src/main.c"}})
	require.NoError(t, err)
	assert.Equal(t, "main", out)

	out, err = g.OutputFile(config.Artifact{OutputName: "app"})
	require.NoError(t, err)
	assert.Equal(t, "app", out)

	_, err = g.OutputFile(config.Artifact{})
	assert.ErrorIs(t, err, ErrNoSourceFiles)
}

func TestToolCommand(t *testing.T) {
	assert.Equal(t, []string{"make", "-f", "Makefile"}, Make.Command("Makefile"))
	assert.Equal(t, []string{"nmake", "/nologo", "/f", "app.mk"}, NMake.Command("app.mk"))
}
