package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"openkey/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(cfg.Server.GinMode)

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		build := handler.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
		router := handler.NewRouter(cfg.Server, a.search, cfg.OpenAI.EmbeddingDimensions, build, logger)

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           otelhttp.NewHandler(router, "openkey"),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cmd.Context()
		errCh := make(chan error, 1)
		go func() {
			logger.WithFields(logrus.Fields{
				"addr":    srv.Addr,
				"version": Version,
			}).Info("Starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
