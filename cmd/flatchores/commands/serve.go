package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/flatchores/internal/database"
	"github.com/deppfellow/flatchores/internal/handler"
	"github.com/deppfellow/flatchores/internal/repository"
	"github.com/deppfellow/flatchores/internal/router"
	"github.com/deppfellow/flatchores/internal/server"
	"github.com/deppfellow/flatchores/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}

		if migrateOnStart && !cfg.UsesMemoryStore() {
			if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
				loggerService.Shutdown()
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		srv, err := server.New(cfg, log, loggerService)
		if err != nil {
			loggerService.Shutdown()
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		repos := repository.NewRepositories(srv)
		services, err := service.NewServices(srv, repos)
		if err != nil {
			_ = srv.Shutdown(context.Background())
			return fmt.Errorf("could not create services: %w", err)
		}

		handlers := handler.NewHandlers(srv, services)
		r := router.NewRouter(srv, handlers)
		srv.SetupHTTPServer(r)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("failed to start server")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("server exited properly")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply pending migrations before serving (postgres driver only)")
}
