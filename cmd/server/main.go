package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pizza-nz/dish-admin/internal/bootstrap"
	"github.com/pizza-nz/dish-admin/internal/config"
	"github.com/pizza-nz/dish-admin/internal/db"
	"github.com/pizza-nz/dish-admin/internal/db/memory"
	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/router"
	"github.com/pizza-nz/dish-admin/internal/service"
	"github.com/pizza-nz/dish-admin/internal/websockets"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dish-admin",
	Short: "Restaurant dish and chef administration server",
	Long: `dish-admin serves the dish and chef catalog over HTTP.

Running without a subcommand starts the server. Use "migrate" to manage the
database schema and "seed" to load the sample chefs, dishes and users.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config (defaults to CONFIG_PATH or "+config.DefaultPath+")")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// openRepositories connects the configured storage driver. The returned
// closer releases the connection.
func openRepositories(cfg *config.Config) (*repository.Repositories, func() error, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Println("Using in-memory storage")
		return memory.NewRepositories(), func() error { return nil }, nil
	}

	// Run database migrations
	if err := db.Migrate(cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repository.NewRepositories(database), database.Close, nil
}

func serve(cfg *config.Config) error {
	repos, closeDB, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	hasher := service.BcryptHasher{}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.Enabled {
		if err := bootstrap.Seed(ctx, repos, hasher, cfg.Seed); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run(ctx)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router.New(repos, hub, cfg, hasher),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited properly")
	return nil
}
