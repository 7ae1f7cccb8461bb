package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suparena/entitymeta"
	"github.com/suparena/entitymeta/config"
	"github.com/suparena/entitymeta/testmodels"
)

var configFile string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typemap",
		Short: "Inspect entity metadata and type mappings",
		Long: `typemap prints the effective host type to column type mapping and the
schemas derived for the bundled models.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default entitymeta.yaml)")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newMappingCmd())
	rootCmd.AddCommand(newSchemaCmd())
	return rootCmd
}

// loadContext builds a mapping context from the config file and environment
func loadContext() (*entitymeta.Context, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	c, err := entitymeta.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	testmodels.Register(c.Registry())
	return c, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
