package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/phonebook/backend/internal/config"
	"github.com/vanshika/phonebook/backend/internal/directory"
	"github.com/vanshika/phonebook/backend/internal/graph"
	"github.com/vanshika/phonebook/backend/internal/logging"
	"github.com/vanshika/phonebook/backend/internal/metrics"
	"github.com/vanshika/phonebook/backend/internal/repository"
	"github.com/vanshika/phonebook/backend/internal/server"
	"github.com/vanshika/phonebook/backend/internal/service"
	"github.com/vanshika/phonebook/backend/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	if err := run(logger, cfg); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := directory.DefaultSeed()
	if cfg.Seed.File != "" {
		loaded, err := directory.LoadSeedFile(cfg.Seed.File)
		if err != nil {
			return err
		}
		seed = loaded
	}
	store, err := directory.NewStore(seed)
	if err != nil {
		return fmt.Errorf("build directory: %w", err)
	}

	src, closeSource, err := buildSource(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	var m *metrics.Metrics
	if cfg.HTTP.MetricsEnabled {
		m = metrics.New()
	}

	svc := service.NewDirectoryService(store,
		service.WithSource(source.Kind(cfg.Source.Kind), src),
		service.WithMetrics(m),
		service.WithLogger(logger.With("component", "directory")),
	)
	if svc.SourceKind() != source.KindLocal {
		// allPersons reads the remote snapshot while every other operation
		// uses the local store; the two are never reconciled.
		logger.Warn("allPersons is served from a remote snapshot", "source", svc.SourceKind())
	}

	schema, err := server.NewSchema(svc)
	if err != nil {
		return fmt.Errorf("build graphql schema: %w", err)
	}

	deps := server.RouterDependencies{
		Health:           svc,
		GraphQL:          server.NewGraphQLHandler(logger, schema),
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	}
	if m != nil {
		deps.Metrics = m.Handler()
	}

	srv := server.New(logger, cfg.HTTP, server.NewRouter(logger, deps))
	if err := srv.Listen(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildSource returns a nil source for the local kind; allPersons then reads
// the store.
func buildSource(ctx context.Context, logger *slog.Logger, cfg config.Config) (source.PersonSource, func(), error) {
	noop := func() {}
	switch source.Kind(cfg.Source.Kind) {
	case source.KindLocal:
		return nil, noop, nil
	case source.KindHTTP:
		logger.Info("using http person source", "url", cfg.Source.URL)
		return source.NewHTTPSource(cfg.Source.URL, cfg.Source.Timeout), noop, nil
	case source.KindGraph:
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("create graph client: %w", err)
		}
		logger.Info("using graph person source", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
		closeFn := func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
		return source.NewGraphSource(repository.New(client)), closeFn, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", source.ErrUnknownSource, cfg.Source.Kind)
	}
}
