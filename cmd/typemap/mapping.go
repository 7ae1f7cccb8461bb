package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMappingCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Print the effective type mapping",
		Long:  "Print the host type to column type mapping after config overrides are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContext()
			if err != nil {
				return err
			}

			switch format {
			case "text":
				fmt.Fprint(cmd.OutOrStdout(), c.Registry().String())
				return nil
			case "yaml":
				return c.Registry().DumpYAML(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}
