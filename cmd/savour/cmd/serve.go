package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/f3rmion/savour/internal/gemini"
	"github.com/f3rmion/savour/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the food analysis service",
	Long: `Starts the analysis service that the UI and 'savour analyze' talk to.

Uploaded photos are sent to Gemini together with a nutritionist prompt in the
requested language. Set GEMINI_API_KEY (or put it in a .env file) first.`,
	Example: `  # Start the service on the default port 6001
  savour serve

  # Start on a custom port
  savour serve --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (default from config, 6001)")
}

func runServe(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()
	cfg, err := loadUserConfig(configDir)
	if err != nil {
		return err
	}

	if _, _, err := setupLogging(cfg, configDir, os.Stderr); err != nil {
		return err
	}

	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	analyzer, err := gemini.New(cmd.Context(), gemini.APIKeyFromEnv(), cfg.Server.Model)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: server.NewRouter(analyzer, cfg.Server.AllowedOrigins),
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Analysis service available", "addr", addr, "model", cfg.Server.Model, "url", "http://localhost"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-cmd.Context().Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "err", err)
			return err
		}
		slog.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
