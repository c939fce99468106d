// mkgen run [config] [args...]
package cmd

import (
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/spf13/cobra"
)

func doRun(cmd *cobra.Command, args []string) {
	target := defaultConfig
	if len(args) > 0 {
		target = args[0]
		args = args[1:] // other arguments will be passed to program
	}
	b := newBuilder(target)
	if err := b.BuildAndRun(cmd.Context(), args); err != nil {
		msg.Fatal("%v", err)
	}
}

var runCmd = &cobra.Command{
	Use:   "run [config] [args...]",
	Short: "Build and run the application",
	Long:  `Build every artifact and run the last application. If no config is given, uses "` + defaultConfig + `"`,
	Args:  cobra.ArbitraryArgs,
	Run:   doRun,
}

func init() {
	// mkgen run subcommand
	rootCmd.AddCommand(runCmd)
	addConfigFlags(runCmd)
}
