package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"stocksim/configs"
	delivery "stocksim/internal/delivery/http"
	"stocksim/internal/domain"
	"stocksim/internal/infra"
	"stocksim/internal/service"
)

func main() {
	// Load environment variables; .env is optional and plain environment
	// variables work too
	_ = godotenv.Load()

	// Load configuration
	cfg := configs.Load()

	log := newLogger(cfg.Server.Env)

	// Initialize the default price source
	prices := service.NewStaticPriceService()

	// Initialize HTTP delivery
	accountHandler := delivery.NewAccountHandler(prices, log)
	if err := seedAccount(accountHandler, cfg.Account, prices, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo account")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AccountHandler: accountHandler,
		Log:            log,
	})

	// Mark-to-market snapshot scheduler
	scheduler := infra.NewScheduler(accountHandler.Current, cfg.Scheduler.SnapshotCron, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start snapshot scheduler")
	}
	defer scheduler.Stop()

	// Start HTTP server
	addr := ":" + cfg.Server.Port
	log.Info().
		Str("addr", addr).
		Str("env", cfg.Server.Env).
		Msg("stocksim server starting")

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited gracefully")
}

// newLogger builds the process logger: human-readable console output in
// development, JSON elsewhere.
func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// seedAccount creates the demo account the process serves, funded from
// config so the simulation starts with a usable balance.
func seedAccount(h *delivery.AccountHandler, cfg configs.AccountConfig, prices domain.PriceSource, log zerolog.Logger) error {
	account, err := domain.NewAccount(cfg.ID, cfg.Owner, cfg.InitialDeposit, prices)
	if err != nil {
		return err
	}
	h.SetAccount(account)

	log.Info().
		Str("account_id", account.ID()).
		Float64("initial_deposit", cfg.InitialDeposit).
		Msg("demo account seeded")
	return nil
}
