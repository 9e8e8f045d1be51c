// main wires high-level dependencies, exposes the HTTP router, and runs the
// payment consumer. Business logic lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"vigil/internal/matching"
	"vigil/internal/payments"
	paymentmetrics "vigil/internal/payments/metrics"
	"vigil/internal/platform/config"
	"vigil/internal/platform/httpserver"
	"vigil/internal/platform/kafka"
	"vigil/internal/platform/kafka/consumer"
	"vigil/internal/platform/kafka/producer"
	"vigil/internal/platform/logger"
	platformmetrics "vigil/internal/platform/metrics"
	"vigil/internal/platform/redis"
	"vigil/internal/results"
	"vigil/internal/screening"
	screeninghandler "vigil/internal/screening/handler"
	screeningmetrics "vigil/internal/screening/metrics"
	"vigil/internal/similarity"
	"vigil/internal/similarity/onnx"
	httptransport "vigil/internal/transport/http"
	"vigil/internal/watchlist"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)
	platformmetrics.BuildInfo(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage.
	var db *sql.DB
	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
	}

	redisClient, err := redis.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, err := buildWatchlist(cfg, db, redisClient, log)
	if err != nil {
		return err
	}

	// Similarity provider.
	var provider similarity.Provider
	if cfg.ModelBundleDir != "" {
		embedder, err := onnx.New(onnx.Config{BundleDir: cfg.ModelBundleDir})
		if err != nil {
			return err
		}
		defer embedder.Close()
		provider = embedder
		log.Info("semantic matching enabled", "bundle_dir", cfg.ModelBundleDir)
	} else {
		provider = similarity.NewFake()
		log.Warn("no model bundle configured, using lexical similarity fallback")
	}

	// Screening engine.
	lexical := matching.NewLexicalMatcher()
	evaluator := matching.NewEvaluator(
		lexical,
		matching.NewSemanticMatcher(provider),
		matching.NewFieldMatcher(lexical),
		log,
	)
	thresholds := matching.Thresholds{Fuzzy: cfg.FuzzyThreshold, Semantic: cfg.SemanticThreshold}

	var resultStore results.Store
	if db != nil {
		resultStore = results.NewPostgres(db)
	} else {
		resultStore = results.NewMemoryStore()
	}

	engine, err := screening.New(store, evaluator, thresholds,
		screening.WithLogger(log),
		screening.WithMetrics(screeningmetrics.New()),
		screening.WithResultStore(resultStore),
		screening.WithDecisionThresholds(screening.DecisionThresholds{
			Review: cfg.ReviewThreshold,
			Block:  cfg.BlockThreshold,
		}),
	)
	if err != nil {
		return err
	}

	stats := payments.NewStats(cfg.LatencyWindow)

	g, ctx := errgroup.WithContext(ctx)

	// Payment pipeline, only when brokers are configured.
	if len(cfg.KafkaBrokers) > 0 {
		if err := kafka.EnsureTopics(ctx, cfg.KafkaBrokers, 3, cfg.PaymentsTopic, cfg.ResultsTopic); err != nil {
			return err
		}

		prod, err := producer.New(producer.Config{Brokers: cfg.KafkaBrokers})
		if err != nil {
			return err
		}
		defer prod.Close()

		pipelineMetrics := paymentmetrics.New()
		orchestrator := payments.NewOrchestrator(
			engine,
			payments.NewKafkaPublisher(prod, cfg.ResultsTopic),
			stats,
			payments.WithLogger(log),
			payments.WithMetrics(pipelineMetrics),
			payments.WithTimeout(cfg.ScreenTimeout),
		)

		cons, err := consumer.New(consumer.Config{
			Brokers: cfg.KafkaBrokers,
			Topics:  []string{cfg.PaymentsTopic},
			Group:   cfg.ConsumerGroup,
			Workers: cfg.ConsumerWorkers,
		}, log)
		if err != nil {
			return err
		}
		defer cons.Close()

		handler := payments.NewHandler(orchestrator, log, pipelineMetrics)
		g.Go(func() error {
			log.Info("payment consumer started",
				"brokers", cfg.KafkaBrokers,
				"topic", cfg.PaymentsTopic,
				"group", cfg.ConsumerGroup,
			)
			if err := cons.Run(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Warn("no kafka brokers configured, payment pipeline disabled")
	}

	// HTTP API.
	router := httptransport.NewRouter(httptransport.Deps{
		Screening: screeninghandler.New(engine, store, resultStore, stats, log),
		Logger:    log,
		DB:        db,
		Redis:     redisClient,
	})
	srv := httpserver.New(cfg.Addr, router)

	g.Go(func() error {
		log.Info("http server started", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return httpserver.Shutdown(srv, 10*time.Second)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// buildWatchlist picks the store backing: Postgres when configured, otherwise
// an in-memory store fed from the seed file or the built-in sample records.
// Redis, when available, caches the active snapshot in front of either.
func buildWatchlist(cfg config.Config, db *sql.DB, redisClient *redis.Client, log *slog.Logger) (watchlist.Store, error) {
	var store watchlist.Store
	if db != nil {
		store = watchlist.NewPostgres(db)
	} else {
		mem := watchlist.NewMemoryStore()
		if cfg.SeedFile != "" {
			records, err := watchlist.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
			mem.Add(records...)
			log.Info("watchlist seeded from file", "path", cfg.SeedFile, "records", len(records))
		} else {
			mem.Add(watchlist.SampleRecords()...)
			log.Warn("no database or seed file configured, using built-in sample watchlist")
		}
		store = mem
	}
	if redisClient != nil {
		store = watchlist.NewCachedStore(store, redisClient.Client, cfg.WatchlistTTL, log)
	}
	return store, nil
}
