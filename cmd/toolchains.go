// mkgen toolchains
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/qobs-build/mkgen/internal/gen"
	"github.com/qobs-build/mkgen/internal/toolchain"
	"github.com/spf13/cobra"
)

func listToolchains() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, color.HiCyanString("Toolchains (project configs)"))
	for _, id := range toolchain.Toolchains() {
		family, _ := toolchain.ForToolchain(id)
		fmt.Fprintf(w, "  %s\t%s\t%s\n", id, family, gen.ToolFor(family).Name)
	}
	w.Flush()

	fmt.Println()
	fmt.Fprintln(w, color.HiCyanString("Hosts (artifact configs)"))
	for _, host := range toolchain.Hosts() {
		family, _ := toolchain.ForHost(host)
		fmt.Fprintf(w, "  %s\t%s\n", host, family)
	}
	w.Flush()
}

var toolchainsCmd = &cobra.Command{
	Use:   "toolchains",
	Short: "List known toolchain and host identifiers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listToolchains()
	},
}

func init() {
	// mkgen toolchains subcommand
	rootCmd.AddCommand(toolchainsCmd)
}
