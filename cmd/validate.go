// mkgen validate [config]
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/qobs-build/mkgen/internal/builder"
	"github.com/qobs-build/mkgen/internal/config"
	"github.com/qobs-build/mkgen/internal/msg"
	"github.com/qobs-build/mkgen/internal/validate"
	"github.com/spf13/cobra"
)

func doValidate(cmd *cobra.Command, args []string) {
	path := configPath(args)
	doc, err := builder.LoadDocument(path, options())
	if err != nil {
		msg.Fatal("%v", err)
	}
	if doc.Form != config.FormProject {
		msg.Info("%s is a %s config, only project configs have a schema", path, doc.Form)
		return
	}

	res := validate.Validate(doc.Project())
	if !res.Valid {
		fmt.Printf("%s %s\n", color.HiRedString("Invalid"), res)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", color.HiGreenString("Valid"), path)
}

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a project config without generating anything",
	Args:  cobra.MaximumNArgs(1),
	Run:   doValidate,
}

func init() {
	// mkgen validate subcommand
	rootCmd.AddCommand(validateCmd)
	addConfigFlags(validateCmd)
}
