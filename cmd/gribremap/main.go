// Command gribremap prepares initial-condition files for AI weather models by
// remapping an operational GDAS/GFS analysis dump onto a per-model template.
//
// Subcommands:
//
//	run        execute one remap operation
//	inventory  list the records in a grid-message file
//	gen        write synthetic template/source fixture files
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "gribremap",
		Short:         "Remap operational analysis files onto AI model templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), inventoryCmd(), genCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
