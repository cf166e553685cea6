package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/city-weather/internal/api/http"
	"github.com/i474232898/city-weather/internal/scheduler"
)

func newServeCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the weather lookup over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Janitor that drops stale cache entries.
			if app.Cache != nil {
				sched := scheduler.New(app.Cache, app.PurgeInterval)
				if err := sched.Start(); err != nil {
					return err
				}
				defer sched.Stop()
			}

			srv := NewServer(app)

			go func() {
				log.Printf("INFO: listening on :%s", app.Port)
				if err := srv.Listen(":" + app.Port); err != nil {
					log.Printf("fiber server stopped: %v", err)
				}
			}()

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
				log.Printf("error during shutdown: %v", err)
			}
			return nil
		},
	}
}

// NewServer builds the fiber app with middleware, health check and API routes.
func NewServer(app App) *fiber.App {
	srv := fiber.New(fiber.Config{
		AppName:               "city-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	srv.Use(logger.New())
	srv.Use(recover.New())

	srv.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": "city-weather",
		}
		if app.Provider != nil {
			body["provider"] = app.Provider.Health()
		}
		return c.JSON(body)
	})

	httpapi.RegisterRoutes(srv, app.Lookup)
	return srv
}
