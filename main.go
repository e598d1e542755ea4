package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"npofeed/config"
	"npofeed/internal/feed"
	"npofeed/internal/pipeline"
	"npofeed/internal/scraper"
	"npofeed/logger"
	"npofeed/services/cache"
	"npofeed/services/publisher"
	"npofeed/services/server"
	"npofeed/services/worker"
)

func main() {
	once := flag.Bool("once", false, "run the pipeline a single time and exit")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("source", cfg.SourceURL).
		Dur("update_interval", cfg.UpdateInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services := initializeServices(ctx, &cfg)
	defer services.Cleanup()

	// Build the pipeline
	s := scraper.NewScraper(cfg.SourceURL, cfg.UserAgent)
	builder := feed.NewBuilder(cfg.StartURL, cfg.FeedFile)
	p := pipeline.New(s, services.Cache, builder, services.Publisher)

	if *once {
		if err := p.Run(); err != nil {
			log.Fatal().Err(err).Msg("Pipeline run failed")
		}
		return
	}

	// Create and start worker
	w := worker.NewWorker(ctx, p, cfg.UpdateInterval)

	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting feed worker")
		workerDone <- w.Start()
	}()

	// Serve the feed artifact
	srv := server.New(cfg.ServerAddr, cfg.FeedFile)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	// Wait for shutdown signal or component failure
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	case err := <-serverDone:
		if err != nil {
			log.Error().Err(err).Msg("Server exited with error")
		}
		cancel()
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.Store
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes the cache backend and the optional
// publisher
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheStore(cfg.MemcacheAddr, cfg.CacheTTL)
		logger.Info("Using memcached cache at %s", cfg.MemcacheAddr)
	} else {
		services.Cache = cache.NewFileStore(cfg.CacheFile, cfg.CacheTTL)
		logger.Info("Using file cache at %s", cfg.CacheFile)
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Publishing to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services
}
