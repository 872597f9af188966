package main

import (
	"log/slog"
	"os"

	"github.com/homefront-labs/realty-backend/internal/config"
	"github.com/homefront-labs/realty-backend/internal/database"
	"github.com/homefront-labs/realty-backend/internal/logging"
	"github.com/homefront-labs/realty-backend/internal/seed"
	"github.com/spf13/cobra"
)

func main() {
	logging.Setup()

	var demoUser string
	var demoPassword string

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample realtors and listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			if err := database.Connect(cfg); err != nil {
				return err
			}
			if err := database.Migrate(); err != nil {
				return err
			}

			if err := seed.Run(database.DB); err != nil {
				return err
			}

			if demoUser != "" {
				if err := seed.CreateDemoUser(database.DB, demoUser, demoPassword); err != nil {
					return err
				}
			}

			slog.Info("seed complete")
			return nil
		},
	}

	rootCmd.Flags().StringVar(&demoUser, "demo-user", "", "also create a demo account with this username")
	rootCmd.Flags().StringVar(&demoPassword, "demo-password", "changeme", "password for the demo account")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}
