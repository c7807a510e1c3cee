package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/overcastwx/grib-remap/internal/gridmsg"
)

func inventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory <file>",
		Short: "List the records in a grid-message file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := gridmsg.ReadFile(args[0])
			if err != nil {
				return err
			}
			for i, rec := range records {
				rows, cols := rec.Values.Dims()
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%s:%s:%d:%dx%d\n",
					i+1, rec.ShortName, rec.LevelType, rec.Level, rows, cols)
			}
			return nil
		},
	}
}
