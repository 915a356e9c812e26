package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/phonebook/backend/internal/config"
	"github.com/vanshika/phonebook/backend/internal/generator"
	"github.com/vanshika/phonebook/backend/internal/graph"
	"github.com/vanshika/phonebook/backend/internal/logging"
	"github.com/vanshika/phonebook/backend/internal/repository"
	"github.com/vanshika/phonebook/backend/internal/service"
)

func main() {
	var (
		dataset = flag.String("dataset", "./data/"+generator.DatasetFile, "Path to a persons.json dataset")
		workers = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	records, err := generator.LoadDataset(*dataset)
	if err != nil {
		logger.Error("failed to load persons", "error", err, "path", *dataset)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Error("persons dataset empty", "path", *dataset)
		os.Exit(1)
	}

	if cfg.Graph.URI == "" {
		logger.Error("GRAPH_URI is required for ingestion")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)

	ingestor := service.NewBulkIngestor(repository.New(client), *workers)

	start := time.Now()
	logger.Info("ingesting persons", "count", len(records), "workers", *workers)
	if err := ingestor.IngestPersons(ctx, records); err != nil {
		logger.Error("person ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "persons", len(records))
}
