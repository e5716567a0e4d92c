package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnplay/internal/app"
	"learnplay/internal/config"
	"learnplay/internal/domain"
	"learnplay/internal/hint"
	"learnplay/internal/infra/memory"
	pgcatalog "learnplay/internal/infra/postgres"
	rediscatalog "learnplay/internal/infra/redis"
	transport "learnplay/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the Learn & Play server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(seedCatalog())
	if pool != nil {
		loader = pgcatalog.NewCatalogLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	catalog, err := loadCatalog(ctx, redisClient, loader, catalogTTL)
	if err != nil {
		return err
	}
	if err := catalog.Validate(); err != nil {
		return err
	}

	var marks app.RefreshMarkStore = memory.NewRefreshMarks()
	if redisClient != nil {
		marks = rediscatalog.NewRefreshMarks(redisClient)
	}

	store := app.NewProgressStore(catalog, seedUser())
	refreshAfter := config.TTLDuration(cfg.Leaderboard.RefreshAfter, 24*time.Hour)
	policy := app.NewRefreshPolicy(marks, refreshAfter)

	var hints *hint.Service
	if cfg.Hint.APIKey != "" {
		hints = hint.NewService(hint.NewGeminiClient(hint.GeminiConfig{
			APIKey:  cfg.Hint.APIKey,
			BaseURL: cfg.Hint.BaseURL,
			Model:   cfg.Hint.Model,
		}))
	} else {
		log.Printf("hint api key not configured, hints will use the fallback response")
		hints = hint.NewService(hint.Unavailable{})
	}

	wsHandler := transport.NewWSHandler(store, policy, hints)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting learnplay service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadCatalog loads the catalog once at startup through the Redis-backed
// cache when Redis is configured, or the in-process TTL cache otherwise.
func loadCatalog(ctx context.Context, client *redis.Client, loader memory.CatalogLoader, ttl time.Duration) (domain.Catalog, error) {
	if client != nil {
		return rediscatalog.NewCatalogCache(client, loader, ttl).GetCatalog(ctx)
	}
	return memory.NewCatalogCache(loader, ttl).GetCatalog(ctx)
}
