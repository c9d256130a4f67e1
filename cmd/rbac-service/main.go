package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/earl-cod3/purity-ui-rbac/internal/auth"
	"github.com/earl-cod3/purity-ui-rbac/internal/config"
	"github.com/earl-cod3/purity-ui-rbac/internal/httpapi"
	"github.com/earl-cod3/purity-ui-rbac/internal/routes"
	"github.com/earl-cod3/purity-ui-rbac/internal/session"
	sessionmemory "github.com/earl-cod3/purity-ui-rbac/internal/session/memory"
	"github.com/earl-cod3/purity-ui-rbac/internal/session/redisstore"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"
	storememory "github.com/earl-cod3/purity-ui-rbac/internal/store/memory"
	"github.com/earl-cod3/purity-ui-rbac/internal/store/postgres"
	"github.com/earl-cod3/purity-ui-rbac/internal/telemetry"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup("rbac-service")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	identities, closeIdentities, err := buildIdentityStore(cfg)
	if err != nil {
		log.Fatalf("identity store: %v", err)
	}
	defer closeIdentities()

	sessions, closeSessions, err := buildSessionStore(cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer closeSessions()

	tree, err := buildRouteTree(cfg)
	if err != nil {
		log.Fatalf("route tree: %v", err)
	}

	authenticator := auth.New(identities, sessions)
	handler := httpapi.NewHandler(authenticator, sessions, tree)
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		IPPerMinute:     cfg.RateLimitPerMinute,
		IPBurst:         cfg.RateLimitBurst,
		TenantPerMinute: cfg.TenantRateLimitPerMinute,
		TenantBurst:     cfg.TenantRateLimitBurst,
	})

	chain := httpapi.SessionMiddleware(sessions,
		httpapi.LoggingMiddleware(limiter.Middleware(handler.Routes())))
	otelHandler := otelhttp.NewHandler(chain, "rbac-service")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("rbac-service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildIdentityStore picks postgres when DB_DSN is set and otherwise falls
// back to the seeded in-process demo store.
func buildIdentityStore(cfg config.Config) (store.IdentityStore, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil
	}

	seeded, err := storememory.NewSeededStore()
	if err != nil {
		return nil, nil, err
	}
	log.Printf("no DB_DSN set, using seeded demo identity store")
	return seeded, func() {}, nil
}

func buildSessionStore(cfg config.Config) (session.Store, func(), error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
	}
	return sessionmemory.NewStore(cfg.SessionTTL), func() {}, nil
}

func buildRouteTree(cfg config.Config) ([]routes.Route, error) {
	if cfg.RoutesFile != "" {
		return routes.LoadFile(cfg.RoutesFile)
	}
	return routes.DefaultTree(), nil
}
