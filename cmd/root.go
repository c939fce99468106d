// mkgen [config], mkgen generate [config]
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/qobs-build/mkgen/internal/builder"
	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/qobs-build/mkgen/internal/toolchain"
	"github.com/spf13/cobra"
)

const defaultConfig = "build.json"

var (
	flagVerbose   bool
	flagCheck     bool
	flagToolchain EnumValue = NewEnumValue("", toolchainHelp())
	flagFormat    EnumValue = NewEnumValue(config.FormatAuto, map[string]string{
		config.FormatAuto: "Detect from the file extension (default)",
		config.FormatJSON: "JSON, comments and trailing commas allowed",
		config.FormatTOML: "TOML",
		config.FormatYAML: "YAML",
	})
)

func toolchainHelp() map[string]string {
	help := make(map[string]string)
	for _, id := range toolchain.Toolchains() {
		family, _ := toolchain.ForToolchain(id)
		help[id] = "Compile with " + family.String()
	}
	return help
}

func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfig
}

func options() builder.Options {
	return builder.Options{
		Format:    flagFormat.Value(),
		Toolchain: flagToolchain.Value(),
	}
}

func newBuilder(path string) *builder.Builder {
	b, err := builder.NewBuilderFromFile(path, options())
	if err != nil {
		msg.Fatal("%v", err)
	}
	return b
}

func doGenerate(cmd *cobra.Command, args []string) {
	b := newBuilder(configPath(args))
	scripts, err := b.Scripts(cmd.Context())
	if err != nil {
		msg.Fatal("%v", err)
	}
	if len(scripts) == 0 {
		msg.Warn("no artifacts, nothing to generate")
		return
	}

	if flagCheck {
		doCheck(b, scripts)
		return
	}

	if err := b.Write(scripts); err != nil {
		msg.Fatal("%v", err)
	}
	for _, s := range scripts {
		fmt.Printf("%s script: %s\n", color.HiGreenString("Generated"), s.File)
	}
}

func doCheck(b *builder.Builder, scripts []builder.Script) {
	stale, err := b.Check(scripts)
	if err != nil {
		msg.Fatal("%v", err)
	}
	if len(stale) == 0 {
		msg.Info("all %d script(s) up to date", len(scripts))
		return
	}

	for _, s := range stale {
		if s.Missing {
			msg.Error("%s does not exist", s.File)
			continue
		}
		msg.Error("%s is out of date:", s.File)
		for _, line := range strings.SplitAfter(s.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "-"):
				fmt.Print(color.RedString("%s", line))
			case strings.HasPrefix(line, "+"):
				fmt.Print(color.GreenString("%s", line))
			default:
				fmt.Print(line)
			}
		}
	}
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   "mkgen [config]",
	Short: "C/C++ build script generator",
	Long: `mkgen reads a description of C/C++ applications and libraries and
generates a Makefile (or NMake makefile for cl toolchains) that builds them.
If no config is given, uses "` + defaultConfig + `"`,
	Args: cobra.MaximumNArgs(1),
	Run:  doGenerate,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		msg.Verbose = flagVerbose
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [config]",
	Short: "Generate build scripts",
	Long:  `Generate build scripts next to the config. If no config is given, uses "` + defaultConfig + `"`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug output")
	addConfigFlags(rootCmd)
	addCheckFlag(rootCmd)

	// mkgen generate subcommand
	rootCmd.AddCommand(generateCmd)
	addConfigFlags(generateCmd)
	addCheckFlag(generateCmd)
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(&flagToolchain, "toolchain", "t", "Override the project toolchain")
	cmd.RegisterFlagCompletionFunc("toolchain", flagToolchain.CompletionFunc())
	cmd.Flags().VarP(&flagFormat, "format", "f", "Config format, one of "+flagFormat.HelpString())
	cmd.RegisterFlagCompletionFunc("format", flagFormat.CompletionFunc())
}

func addCheckFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagCheck, "check", false, "Don't write anything, fail if scripts on disk are out of date")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
