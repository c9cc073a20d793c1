package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/lumoshive/service-account-go/internal/config"
	"github.com/lumoshive/service-account-go/internal/router"
	"github.com/lumoshive/service-account-go/internal/token"
	userrepo "github.com/lumoshive/service-account-go/internal/user/repo"
	"github.com/lumoshive/service-account-go/pkg/database"
	"github.com/lumoshive/service-account-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-account-go")

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}

	// refuse to start when the database is unreachable
	sqlDB, err := database.Connect(database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}

	// sqlxDB wraps sqlDB; one Close covers both
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	users := userrepo.NewUserRepo(sqlxDB)
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	if err := users.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		sugar.Fatalf("ensure schema: %v", err)
	}
	cancelSchema()

	issuer := token.NewIssuer(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := router.RegisterRoutes(sugar, sqlxDB, issuer, cfg.PaymentDelay)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sugar.Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
