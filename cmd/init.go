// mkgen init [name], mkgen new [path]
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/qobs-build/mkgen/internal/toolchain"
	"github.com/qobs-build/mkgen/internal/validate"
	"github.com/spf13/cobra"
)

func writefile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Fatal("create file %s: %v", path, err)
		}
		fmt.Printf("%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	}
}

func mkdir(elem ...string) {
	path := filepath.Join(elem...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		msg.Fatal("mkdir %s: %v", path, err)
	}
}

func getProgramName() string {
	if len(os.Args) == 0 {
		return "mkgen"
	}
	basename := filepath.Base(os.Args[0])
	return strings.TrimSuffix(basename, filepath.Ext(basename))
}

// defaultToolchain picks the toolchain matching the running OS
func defaultToolchain() string {
	if flagToolchain.Value() != "" {
		return flagToolchain.Value()
	}
	if host := config.NewEnv().TargetOS; toolchain.IsToolchain(host) {
		return host
	}
	return "linux"
}

// projectConfig renders the build.json of a new project
func projectConfig(name string, lib bool) string {
	artifactType, output := validate.Application, name
	file := "src/main.c"
	if lib {
		artifactType = validate.StaticLibrary
		file = "src/" + name + ".c"
	}
	return `{
	// Generated by ` + getProgramName() + ` init
	"title": "` + name + `",
	"toolchain": "` + defaultToolchain() + `",
	"artifacts": [
		{
			"title": "` + name + `",
			"type": "` + artifactType + `",
			"files": ["` + file + `"],
			"outputName": "` + output + `",
			"outputPath": "build",
			"includePaths": ["src"]
		}
	]
}
`
}

// initIn initializes a project in an existing specified directory
func initIn(dir, name string, lib bool) {
	writefile(projectConfig(name, lib), dir, defaultConfig)

	mkdir(dir, "src")

	if lib {
		writefile(`#include <stdio.h>
#include "`+name+`.h"

void hello_world(void) {
    puts("Hello, World!");
}
`, dir, "src", name+".c")

		guard := strings.ToUpper(strings.Map(func(r rune) rune {
			if r == '-' || r == ' ' || r == '.' {
				return '_'
			}
			return r
		}, name)) + "_H"
		writefile(`#ifndef `+guard+`
#define `+guard+`

#ifdef __cplusplus
extern "C" {
#endif

void hello_world(void);

#ifdef __cplusplus
} // extern "C"
#endif

#endif
`, dir, "src", name+".h")
	} else {
		writefile(`#include <stdio.h>

int main(void) {
    puts("Hello, World!");
    return 0;
}
`, dir, "src", "main.c")
	}

	// .gitignore
	writefile(`build/
*.o
*.obj
`, dir, ".gitignore")

	programName := getProgramName()
	cfg := filepath.ToSlash(filepath.Join(dir, defaultConfig))
	fmt.Printf("You can now do %s to build, or %s to build and run.\n",
		color.HiCyanString(programName+" build "+cfg), color.HiCyanString(programName+" run "+cfg))
}

var library bool

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new project in the current directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initIn(".", args[0], library)
	},
}

var newCmd = &cobra.Command{
	Use:   "new [path]",
	Short: "Create a new project in a new directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mkdir(args[0])
		initIn(args[0], filepath.Base(args[0]), library)
	},
}

func init() {
	// mkgen init subcommand
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&library, "lib", "l", false, "Create a static library artifact")
	initCmd.Flags().VarP(&flagToolchain, "toolchain", "t", "Toolchain of the new project")

	// mkgen new subcommand
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVarP(&library, "lib", "l", false, "Create a static library artifact")
	newCmd.Flags().VarP(&flagToolchain, "toolchain", "t", "Toolchain of the new project")
}
