package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"interviewprep/internal/config"
	"interviewprep/internal/repository"
	"interviewprep/internal/seed"
)

// Writes a YAML question dataset into MongoDB so the server can run with
// SEED_SOURCE=mongo.
func main() {
	file := flag.String("file", "", "YAML dataset to load (defaults to the embedded dataset)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Mongo.URI == "" {
		slog.Error("MONGO_URI is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var source seed.Source = seed.Embedded()
	if *file != "" {
		source = seed.File(*file)
	}
	ds, err := source.Load(ctx)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	repo := repository.NewQuestionRepo(client.Database(cfg.Mongo.Database))

	previous, err := repo.Version(ctx)
	if err != nil {
		slog.Error("failed to read stored dataset version", "error", err)
		os.Exit(1)
	}
	if err := repo.ReplaceAll(ctx, ds); err != nil {
		slog.Error("failed to write dataset", "error", err)
		os.Exit(1)
	}

	slog.Info("dataset seeded",
		"database", cfg.Mongo.Database,
		"previous_version", previous,
		"version", ds.Version,
		"companies", len(ds.Companies),
		"questions", ds.QuestionCount(),
		"tags", len(ds.Tags),
	)
}
