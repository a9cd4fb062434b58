package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pizza-nz/dish-admin/internal/bootstrap"
	"github.com/pizza-nz/dish-admin/internal/config"
	"github.com/pizza-nz/dish-admin/internal/db"
	"github.com/pizza-nz/dish-admin/internal/service"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply every pending migration, or roll back the last N with --down N.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.Driver != config.DriverPostgres {
			return fmt.Errorf("migrate needs the %s driver, config uses %q", config.DriverPostgres, cfg.Database.Driver)
		}

		if downSteps > 0 {
			if err := db.MigrateDown(cfg.Database, downSteps); err != nil {
				return err
			}
			log.Printf("Rolled back %d migration(s)", downSteps)
			return nil
		}

		if err := db.Migrate(cfg.Database); err != nil {
			return err
		}
		log.Println("Migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample chefs, dishes and users into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		repos, closeDB, err := openRepositories(cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		return bootstrap.Seed(cmd.Context(), repos, service.BcryptHasher{}, cfg.Seed)
	},
}

func init() {
	migrateCmd.Flags().IntVar(&downSteps, "down", 0, "Roll back this many migrations instead of applying")
}
