package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"web2pdf/internal/config"
	"web2pdf/internal/http/server"
	"web2pdf/internal/infra/logging"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the form and the /convert relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			initLogging(cmd, cfg, "")

			var rdb *redis.Client
			if cfg.Cache.PDFCacheEnabled {
				rdb = redis.NewClient(&redis.Options{
					Addr: cfg.Cache.RedisHost,
					DB:   cfg.Cache.PDFCacheDB,
				})
				defer rdb.Close()
			}

			app := server.New(server.Deps{Config: cfg, Redis: rdb})
			logging.Info("Relay starting", "addr", cfg.Server.Host+cfg.Server.Port,
				"upstream", cfg.Upstream.URL, "api_key", cfg.Upstream.APIKey)

			idleConnsClosed := make(chan struct{})
			startServer(app, cfg, idleConnsClosed)
			<-idleConnsClosed
			return nil
		},
	}
}

// startServer starts the Fiber app and blocks until a shutdown signal arrives.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	go func() {
		if err := app.Listen(cfg.Server.Host + cfg.Server.Port); err != nil {
			logging.Error("Server error", "error", err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)
	<-sigint

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}
