package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/01moynul/stockroom-golang/internal/auth"
	"github.com/01moynul/stockroom-golang/internal/cache"
	"github.com/01moynul/stockroom-golang/internal/cart"
	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/config"
	"github.com/01moynul/stockroom-golang/internal/database"
	"github.com/01moynul/stockroom-golang/internal/handlers"
	"github.com/01moynul/stockroom-golang/internal/routes"
	"github.com/01moynul/stockroom-golang/internal/session"
	"github.com/01moynul/stockroom-golang/internal/shaper"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg := config.Load()

	// 1. --- Main Database Connection ---
	db, err := database.OpenDB(cfg.DBDriver, cfg.DBDSN, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("Failed to connect to primary database: %v", err)
	}

	// 2. --- Redis (optional): sessions and read cache ---
	var (
		rdb          *redis.Client
		sessionStore session.Store
		readCache    *cache.Cache
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		readCache = cache.New(rdb, cfg.CachePrefix+"catalog:", cfg.CacheTTL)
		if err := readCache.Ping(context.Background()); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		sessionStore = session.NewRedisStore(rdb, cfg.CachePrefix, cfg.SessionTTL)
		log.Printf("Redis connected at %s (sessions + read cache)", cfg.RedisAddr)
	} else {
		sessionStore = session.NewMemoryStore()
		log.Println("WARNING: REDIS_ADDR not set. Using in-memory sessions and no read cache.")
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Catalog: catalog.NewService(db, cfg.GalleryLimit),
		Carts:   cart.NewManager(db),
		Shaper:  shaper.New(cfg),
		Cache:   readCache,
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Config:  cfg,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, sessionStore)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// --- Start Server ---
	go func() {
		log.Printf("Starting Stockroom API server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Shutting down HTTP server...")
				return srv.Shutdown(ctx)
			},
			"database": func(ctx context.Context) error {
				return database.Close(db)
			},
			"redis": func(ctx context.Context) error {
				if rdb == nil {
					return nil
				}
				return rdb.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}
