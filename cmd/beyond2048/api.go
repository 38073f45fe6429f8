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

	"github.com/vovakirdan/beyond2048/internal/api"
	"github.com/vovakirdan/beyond2048/internal/auth"
)

const shutdownTimeout = 10 * time.Second

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API and WebSocket play server",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/auth/signup        - Create an account
  POST /api/auth/login         - Log in and receive a token
  GET  /api/auth/me            - Current account
  GET  /api/stats              - Your statistics and recent games
  POST /api/stats              - Record a finished game
  DELETE /api/stats            - Reset your statistics
  GET  /api/stats/leaderboard  - Ranked players (?sort=&limit=)
  GET  /ws/play                - WebSocket play (?size=&token=)

Set BEYOND2048_JWT_SECRET (or auth.jwt_secret) before exposing the server.

Examples:
  beyond2048 api
  beyond2048 api --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (overrides config)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}

	logger, err := newLogger(cfg, "api")
	if err != nil {
		return err
	}

	secret, configured := cfg.JWTSecret()
	if !configured {
		logger.Warn("no JWT secret configured, using the development secret")
	}
	issuer, err := auth.NewIssuer(secret, cfg.Auth.TokenTTL())
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	handler := api.NewServer(api.Options{
		Store:  store,
		Issuer: issuer,
		Logger: logger,
		Game: api.GameOptions{
			Size:            cfg.Game.BoardSize,
			FourProbability: cfg.Game.FourProbability,
			HistoryLimit:    cfg.Game.HistoryLimit,
			Seed:            flagSeed,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
