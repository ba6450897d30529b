package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cartercs66-svg/qr-ticket/internal/app"
	"github.com/cartercs66-svg/qr-ticket/internal/clock"
	"github.com/cartercs66-svg/qr-ticket/internal/config"
	"github.com/cartercs66-svg/qr-ticket/internal/payments"
	"github.com/cartercs66-svg/qr-ticket/internal/storage/memory"
	"github.com/cartercs66-svg/qr-ticket/internal/storage/postgres"
	"github.com/cartercs66-svg/qr-ticket/internal/storage/redisstore"
	transporthttp "github.com/cartercs66-svg/qr-ticket/internal/transport/http"
	"github.com/cartercs66-svg/qr-ticket/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, cleanup := newStore(startupCtx, cfg, logger)
	defer cleanup()

	verifier := newVerifier(cfg, logger)

	issueSvc := app.NewIssueService(store)
	checkinSvc := app.NewCheckinService(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/ticket", transporthttp.HandleTicket(verifier, issueSvc, cfg.BaseURL, cfg.Event, logger))
	mux.Handle("/checkin", transporthttp.HandleCheckin(checkinSvc, cfg.CheckinActor, logger))
	mux.Handle("/scanner", transporthttp.HandleScanner(cfg.BaseURL))
	mux.Handle("/", transporthttp.HandleHome(cfg.Event, cfg.PaymentLinkURL))

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

// newStore picks the ticket store backend: Postgres when DATABASE_URL
// is set, Redis when REDIS_URL is set, otherwise the in-process map.
// All three honor the same per-id atomicity contract.
func newStore(ctx context.Context, cfg config.Config, logger *log.Logger) (app.TicketStore, func()) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect to db: %v", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		if err := migrations.Apply(ctx, pool); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		logger.Printf("ticket store: postgres")
		return postgres.NewTicketRepository(pool, clock.NewSystem()), pool.Close

	case cfg.RedisURL != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		logger.Printf("ticket store: redis")
		return redisstore.NewStore(rdb, clock.NewSystem()), func() { _ = rdb.Close() }

	default:
		logger.Printf("WARN: no DATABASE_URL or REDIS_URL set, tickets are lost on restart")
		return memory.NewStore(clock.NewSystem()), func() {}
	}
}

func newVerifier(cfg config.Config, logger *log.Logger) app.PaymentVerifier {
	if cfg.PaymentVerifier == "fake" {
		logger.Printf("WARN: fake payment verifier enabled, every session counts as paid")
		return payments.NewFakeVerifier()
	}
	if cfg.StripeSecretKey == "" {
		log.Fatalf("STRIPE_SECRET_KEY not set (or set PAYMENT_VERIFIER=fake for development)")
	}
	return payments.NewStripeVerifier(cfg.StripeSecretKey)
}
