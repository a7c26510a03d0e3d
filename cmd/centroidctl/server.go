package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/db"
	"github.com/centroidhq/centroid/pkg/guide"
	"github.com/centroidhq/centroid/pkg/logging"
	"github.com/centroidhq/centroid/pkg/server"
	"github.com/centroidhq/centroid/pkg/server/endpoints"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the centroid dashboard server",
	Long: `Run the centroid dashboard server.

The server listens on 127.0.0.1:8050 by default and serves the
dashboard, the workshop guide and the JSON API. Database migrations are
applied on startup; use --skip-migrations to skip them.

Example:
  centroidctl server
  centroidctl server --port 3000 --datasets-dir ./my-data --watch`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		// Flags win over the file and the environment.
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("database-url") {
			cfg.DatabaseURL, _ = cmd.Flags().GetString("database-url")
		}
		if cmd.Flags().Changed("datasets-dir") {
			cfg.DatasetsDir, _ = cmd.Flags().GetString("datasets-dir")
		}
		if cmd.Flags().Changed("watch") {
			cfg.WatchDatasets, _ = cmd.Flags().GetBool("watch")
		}
		if err := cfg.Validate(); err != nil {
			fail("Invalid configuration: %v", err)
		}

		log := logging.New(cfg.LogLevel, cfg.LogFormat)

		skipMigrations, _ := cmd.Flags().GetBool("skip-migrations")
		if !skipMigrations {
			version, err := db.Migrate(cfg.DatabaseURL)
			if err != nil {
				fail("Migration failed: %v", err)
			}
			log.Info().Uint("version", version).Msg("database schema is up to date")
		}

		database, err := db.Connect(cfg.DatabaseURL, cfg.LogLevel)
		if err != nil {
			fail("Unable to connect to database: %v", err)
		}

		registry, err := dataset.NewRegistry(log)
		if err != nil {
			fail("Unable to load embedded datasets: %v", err)
		}
		if cfg.DatasetsDir != "" {
			if err := registry.LoadDir(cfg.DatasetsDir); err != nil {
				fail("Unable to load datasets from %s: %v", cfg.DatasetsDir, err)
			}
		}

		g, err := guide.Load()
		if err != nil {
			fail("Unable to load guide chapters: %v", err)
		}

		s := server.NewServer(cfg, log, database, registry, g)
		endpoints.RegisterAll(s)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if cfg.WatchDatasets && cfg.DatasetsDir != "" {
			go func() {
				if err := registry.Watch(ctx, cfg.DatasetsDir); err != nil {
					log.Error().Err(err).Str("dir", cfg.DatasetsDir).Msg("dataset watcher stopped")
				}
			}()
		}

		addr, err := s.Listen()
		if err != nil {
			fail("Unable to listen on %s: %v", cfg.Addr(), err)
		}

		log.Info().
			Str("addr", addr).
			Strs("datasets", registry.Names()).
			Msgf("serving dashboard at http://%s/", addr)

		errCh := make(chan error, 1)
		go func() { errCh <- s.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				fail("Shutdown failed: %v", err)
			}
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fail("Server failed: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("bind-address", "b", "127.0.0.1", "server bind address")
	serverCmd.Flags().IntP("port", "p", 8050, "server listen port")
	serverCmd.Flags().String("database-url", "", "database URL (postgres:// or a SQLite path)")
	serverCmd.Flags().String("datasets-dir", "", "directory of extra CSV datasets")
	serverCmd.Flags().Bool("watch", false, "reload the datasets directory on file changes")
	serverCmd.Flags().Bool("skip-migrations", false, "skip running database migrations on start")
}

// waitURL is the address wait polls; kept next to the server command
// because the two must agree on the scheme.
func waitURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d/v1/status", port)
}
