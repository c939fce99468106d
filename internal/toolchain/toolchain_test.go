package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForToolchain(t *testing.T) {
	families := map[Family][]string{
		CL: {"win32", "win32-make-cl-win32-x86", "win32-make-cl-win32-x64"},
		Clang: {
			"freebsd", "darwin",
			"linux-make-clang-linux-x86", "linux-make-clang-linux-x64",
			"freebsd-make-clang-freebsd-x86", "freebsd-make-clang-freebsd-x64",
			"darwin-make-clang-darwin-x86", "darwin-make-clang-darwin-x64",
		},
		GCC: {
			"linux", "linux-make-gcc-linux-x86", "linux-make-gcc-linux-x64",
			"freebsd-make-gcc-freebsd-x64",
			"darwin-make-gcc-darwin-x86", "darwin-make-gcc-darwin-x64",
		},
	}

	total := 0
	for want, ids := range families {
		for _, id := range ids {
			got, ok := ForToolchain(id)
			require.True(t, ok, id)
			assert.Equal(t, want, got, id)
			total++
		}
	}
	assert.Len(t, Toolchains(), total)

	for _, id := range []string{"", "Linux", "linux-gcc", "linux-clang", "darwin-clang", "win64", "linux-make-gcc-linux-arm"} {
		_, ok := ForToolchain(id)
		assert.False(t, ok, id)
	}
}

func TestForHost(t *testing.T) {
	tests := []struct {
		host string
		want Family
	}{
		{"", GCC},
		{"linux", GCC},
		{"linux-gcc", GCC},
		{"darwin", Clang},
		{"darwin-clang", Clang},
		{"linux-clang", Clang},
		{"freebsd", Clang},
	}
	for _, tt := range tests {
		got, err := ForHost(tt.host)
		require.NoError(t, err, tt.host)
		assert.Equal(t, tt.want, got, tt.host)
	}

	for _, host := range []string{"bogus-host", "win32", "linux-make-gcc-linux-x64"} {
		_, err := ForHost(host)
		assert.ErrorIs(t, err, ErrInvalidHost, host)
	}
}

func TestSelect(t *testing.T) {
	table := map[Family]string{CL: "cl.exe", Clang: "clang-17", GCC: "gcc-13"}

	got, ok := Select("win32-make-cl-win32-x64", table)
	require.True(t, ok)
	assert.Equal(t, "cl.exe", got)

	got, ok = Select("darwin", table)
	require.True(t, ok)
	assert.Equal(t, "clang-17", got)

	_, ok = Select("amiga", table)
	assert.False(t, ok)

	_, ok = Select("linux", map[Family]string{CL: "cl"})
	assert.False(t, ok, "family missing from the table")
}

func TestFamilyString(t *testing.T) {
	for _, f := range []Family{CL, Clang, GCC} {
		parsed, ok := ParseFamily(f.String())
		require.True(t, ok)
		assert.Equal(t, f, parsed)
	}
	_, ok := ParseFamily("unknown")
	assert.False(t, ok)
}

func TestPlatformArch(t *testing.T) {
	assert.Equal(t, "freebsd", Platform("freebsd-make-gcc-freebsd-x64"))
	assert.Equal(t, "darwin", Platform("darwin"))
	assert.Equal(t, "linux", Platform("linux-clang"))
	assert.Equal(t, "x64", Arch("freebsd-make-gcc-freebsd-x64"))
	assert.Equal(t, "x86", Arch("win32-make-cl-win32-x86"))
	assert.Equal(t, "", Arch("linux"))

	assert.Equal(t, []string{"-lm"}, StandardFlags("freebsd"))
	assert.Empty(t, StandardFlags("linux"))
}

func TestDriverNaming(t *testing.T) {
	gcc, cl := Drivers[GCC], Drivers[CL]

	assert.Equal(t, []string{"-o", "app"}, gcc.Output("app"))
	assert.Equal(t, []string{"/Feapp.exe"}, cl.Output("app.exe"))

	assert.Equal(t, "libfoo.a", gcc.StaticLibraryName("foo"))
	assert.Equal(t, "foo.lib", cl.StaticLibraryName("foo"))
	assert.Equal(t, "libfoo.so", gcc.SharedLibraryName("linux", "foo"))
	assert.Equal(t, "libfoo.dylib", Drivers[Clang].SharedLibraryName("darwin", "foo"))
	assert.Equal(t, "foo.dll", cl.SharedLibraryName("win32", "foo"))
	assert.Equal(t, "app.exe", cl.ExecutableName("app"))
	assert.Equal(t, "app.exe", cl.ExecutableName("app.exe"))
	assert.Equal(t, "app", gcc.ExecutableName("app"))

	assert.Equal(t, "mylib.o", gcc.ObjectName("source/mylib.c"))
	assert.Equal(t, "mylib.obj", cl.ObjectName(`source\mylib.c`))

	assert.Equal(t, "-lm", gcc.LinkLibrary("m"))
	assert.Equal(t, "user32.lib", cl.LinkLibrary("user32"))
	assert.Equal(t, "user32.lib", cl.LinkLibrary("user32.lib"))

	assert.Equal(t, []string{"ar", "rcs", "libx.a", "a.o", "b.o"}, gcc.Archive("libx.a", []string{"a.o", "b.o"}))
	assert.Equal(t, []string{"lib", "/nologo", "/OUT:x.lib", "a.obj"}, cl.Archive("x.lib", []string{"a.obj"}))

	assert.Equal(t, []string{"-dynamiclib"}, gcc.SharedLinkFlags("darwin"))
	assert.Equal(t, []string{"-shared", "-fPIC"}, gcc.SharedLinkFlags("linux"))
	assert.Equal(t, []string{"/LD"}, cl.SharedLinkFlags("win32"))
}
