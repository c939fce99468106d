// mkgen build [config]
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/spf13/cobra"
)

func doBuild(cmd *cobra.Command, args []string) {
	b := newBuilder(configPath(args))
	scripts, err := b.Scripts(cmd.Context())
	if err != nil {
		msg.Fatal("%v", err)
	}
	if err := b.Write(scripts); err != nil {
		msg.Fatal("%v", err)
	}
	if err := b.Build(cmd.Context(), scripts); err != nil {
		msg.Fatal("%v", err)
	}
	for _, s := range scripts {
		fmt.Printf("%s %s\n", color.HiGreenString("Built"), s.Output)
	}
}

var buildCmd = &cobra.Command{
	Use:   "build [config]",
	Short: "Generate build scripts and run them",
	Long:  `Generate build scripts, then run the build tool on each in artifact order. If no config is given, uses "` + defaultConfig + `"`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doBuild,
}

func init() {
	// mkgen build subcommand
	rootCmd.AddCommand(buildCmd)
	addConfigFlags(buildCmd)
}
