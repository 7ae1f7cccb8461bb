package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suparena/entitymeta"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the entitymeta version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			info := entitymeta.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entitymeta typemap version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		},
	}
}
