// Package cmd holds the command line entry points.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenrril/fightshop/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fightshop",
	Short: "Combat sports storefront API",
	Long: `fightshop serves the catalog, cart, checkout and account API of the store.

Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
		if err != nil {
			log.Warn().Str("level", c.LogLevel).Msg("unknown LOG_LEVEL, using info")
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
		cfg = c
		return nil
	},
	RunE: runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
