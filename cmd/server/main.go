package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"interviewprep/internal/cache"
	"interviewprep/internal/catalog"
	"interviewprep/internal/config"
	"interviewprep/internal/repository"
	"interviewprep/internal/seed"
	"interviewprep/internal/service"
	"interviewprep/internal/transport/rest"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting interviewprep",
		"port", cfg.Server.Port,
		"seed_source", cfg.Seed.Source,
		"ai_provider", cfg.AI.Provider,
		"mongo", cfg.Mongo.URI != "",
		"redis", cfg.Redis.URI != "",
	)

	ctx := context.Background()

	// MongoDB connection (optional unless it is the seed source)
	var db *mongo.Database
	if cfg.Mongo.URI != "" {
		client, err := connectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			slog.Error("failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer client.Disconnect(context.Background())
		db = client.Database(cfg.Mongo.Database)
		slog.Info("connected to MongoDB", "database", cfg.Mongo.Database)
	}

	var source seed.Source
	switch cfg.Seed.Source {
	case config.SeedFile:
		source = seed.File(cfg.Seed.File)
	case config.SeedMongo:
		source = repository.NewQuestionRepo(db)
	default:
		source = seed.Embedded()
	}

	companies, err := catalog.Default()
	if err != nil {
		slog.Error("failed to load company catalog", "error", err)
		os.Exit(1)
	}

	generator, err := service.NewGenerator(ctx, cfg.AI)
	if err != nil {
		slog.Error("failed to create question generator", "error", err)
		os.Exit(1)
	}

	questionSvc := service.NewQuestionService(source, companies, generator)

	// Redis connection (optional; enables analytics caching and trending)
	if cfg.Redis.URI != "" {
		rdb, err := connectRedis(ctx, cfg.Redis.URI)
		if err != nil {
			slog.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		questionSvc.SetAnalyticsCache(cache.NewAnalyticsCache(rdb, cfg.Redis.CacheTTL))
		questionSvc.SetTrendingCache(cache.NewTrendingCache(rdb))
		slog.Info("connected to Redis", "cache_ttl", cfg.Redis.CacheTTL.String())
	}

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = questionSvc.Initialize(initCtx)
	cancel()
	if err != nil {
		slog.Error("failed to initialize question repository", "error", err)
		os.Exit(1)
	}

	router := rest.NewRouter(&rest.Container{
		QuestionService: questionSvc,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// connectRedis accepts a redis:// URL or a bare host:port
func connectRedis(ctx context.Context, uri string) (*redis.Client, error) {
	opts := &redis.Options{Addr: uri}
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		parsed, err := redis.ParseURL(uri)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
