// Command notehub-server starts the notes HTTP API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/akuzmin/notehub/internal/config"
	"github.com/akuzmin/notehub/internal/limiter"
	"github.com/akuzmin/notehub/internal/migrate"
	"github.com/akuzmin/notehub/internal/repository/postgres"
	"github.com/akuzmin/notehub/internal/server/httpapi"
	"github.com/akuzmin/notehub/internal/service"
	"github.com/akuzmin/notehub/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg := config.Load()

	// Flags override environment values.
	addr := flag.String("addr", cfg.Addr, "listen address")
	dsn := flag.String("dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
	jwtKey := flag.String("jwt-key", cfg.JWTSecret, "HS256 signing key (required)")
	accessTTL := flag.Duration("access-ttl", cfg.AccessTTL, "access token TTL")
	bcryptCost := flag.Int("bcrypt-cost", cfg.BcryptCost, "bcrypt cost factor")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	if *jwtKey == "" {
		logger.Fatal("missing jwt signing key (--jwt-key or NOTEHUB_JWT_SECRET)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, *dsn); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, *dsn)
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	noteRepo := postgres.NewNoteRepo(db)

	var lim limiter.Limiter
	if cfg.Login.MaxFails > 0 {
		lim = limiter.NewPG(db.Pool, cfg.Login.Window, cfg.Login.MaxFails, cfg.Login.BlockFor)
	}

	// Services
	issuer := token.NewIssuer([]byte(*jwtKey), *accessTTL)
	authSvc := service.NewAuthService(userRepo, issuer, lim, *bcryptCost)
	noteSvc := service.NewNoteService(noteRepo)

	srv := httpapi.New(authSvc, noteSvc, issuer, db.Pool, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- srv.Start(*addr)
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
