package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenrril/fightshop/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables (postgres) or indexes (mongo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer application.Close(cmd.Context())
		if err := application.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Info().Str("store", cfg.Store).Msg("migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled product catalog into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer application.Close(cmd.Context())
		if err := application.Migrate(cmd.Context()); err != nil {
			return err
		}
		return application.Seed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
