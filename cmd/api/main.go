package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sps/users-api/internal/api"
	"github.com/sps/users-api/internal/api/handler"
	"github.com/sps/users-api/internal/core/domain"
	"github.com/sps/users-api/internal/core/policy"
	"github.com/sps/users-api/internal/core/service"
	"github.com/sps/users-api/internal/infrastructure/credentials"
	"github.com/sps/users-api/internal/infrastructure/db/memory"
	"github.com/sps/users-api/internal/pkg/config"
	"github.com/sps/users-api/pkg/logger"
)

// @title           Users API
// @version         1.0
// @description     User management API with bearer token authentication and admin/user roles.

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "users-api",
	})
	lg.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("token_format", cfg.Auth.TokenFormat).
		Msg("starting application")

	hasher := credentials.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := credentials.NewTokenIssuer(credentials.TokenOptions{
		Format:    cfg.Auth.TokenFormat,
		JWTSecret: cfg.Auth.JWTSecret,
		PasetoKey: cfg.Auth.PasetoKey,
		TTL:       cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	if cfg.Auth.TokenFormat == credentials.FormatPaseto && cfg.Auth.PasetoKey == "" {
		lg.Warn().Msg("PASETO_KEY not set, using a random key; tokens will not survive a restart")
	}

	store := memory.NewUserStore(hasher)
	if cfg.Store.SeedAdmin {
		if err := store.SeedAdmin(ctx); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		lg.Info().Str("email", domain.SeedAdminEmail).Msg("seed admin ready")
	}

	if cfg.Auth.AllowAdminSignup {
		lg.Warn().Msg("anonymous admin registration is enabled; set ALLOW_ADMIN_SIGNUP=false to disable")
	}

	authService := service.NewAuthService(store, hasher, tokens, lg)
	userService := service.NewUserService(store, policy.Registration{AllowAdmin: cfg.Auth.AllowAdminSignup}, lg)

	router := api.NewRouter(api.Deps{
		Log:           lg,
		Auth:          authService,
		Users:         userService,
		Tokens:        tokens,
		Health:        map[string]handler.Pinger{"user_store": store},
		CORSOrigins:   cfg.CORSAllowedOrigins,
		EnableSwagger: !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", server.Addr).Msg("http server listening")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		lg.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	lg.Info().Msg("server stopped")
	return nil
}
