// Command seed fills a catalog service with synthetic users, categories
// and products.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogseed/internal/catalog"
	"catalogseed/internal/config"
	"catalogseed/internal/observability"
	"catalogseed/internal/seed"
	"catalogseed/internal/throttle"

	"github.com/brianvoe/gofakeit/v6"
)

// seedFlags holds command-line overrides. Unset flags keep their sentinel
// values and leave the loaded configuration untouched.
type seedFlags struct {
	products    int
	maxAttempts int
	baseURL     string
	randomSeed  int64
}

func parseFlags(fs *flag.FlagSet, args []string) (seedFlags, error) {
	var f seedFlags
	fs.IntVar(&f.products, "products", 0, "Number of products to create (overrides PRODUCT_TARGET)")
	fs.IntVar(&f.maxAttempts, "max-attempts", -1, "Product attempt bound, 0 for unbounded (overrides PRODUCT_MAX_ATTEMPTS)")
	fs.StringVar(&f.baseURL, "base-url", "", "Catalog API base URL (overrides CATALOG_BASE_URL)")
	fs.Int64Var(&f.randomSeed, "seed", -1, "Random seed, 0 for a random run (overrides RANDOM_SEED)")
	err := fs.Parse(args)
	return f, err
}

func (f seedFlags) override(cfg *config.Config) {
	if f.products > 0 {
		cfg.ProductTarget = f.products
	}
	if f.maxAttempts >= 0 {
		cfg.ProductMaxTries = f.maxAttempts
	}
	if f.baseURL != "" {
		cfg.CatalogBaseURL = f.baseURL
	}
	if f.randomSeed >= 0 {
		cfg.RandomSeed = f.randomSeed
	}
}

func main() {
	flags, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	cfg, err := config.LoadConfig(flags.override)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Printf("❌ Seeding failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	observability.SetLogger(observability.NewLogger(os.Stdout, cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "catalogseed",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRatio:    cfg.TracingSample,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := observability.ServeMetrics(ctx, cfg.MetricsAddr); err != nil {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	runID := observability.GenerateCorrelationID()
	ctx = observability.WithCorrelationID(ctx, runID)

	log.Println("🌱 Catalog Seeder")
	log.Println("=================")
	gate := throttle.NewInterval(cfg.ThrottleInterval)
	log.Printf("Target: %s, %d products, run %s\n", cfg.CatalogBaseURL, cfg.ProductTarget, runID)
	log.Printf("Pacing: one product attempt every %s\n", gate.Interval())

	seeder := seed.NewSeeder(catalog.NewClient(cfg.CatalogBaseURL, cfg.HTTPTimeout), seed.Options{
		Password:      cfg.UserPassword,
		ProductTarget: cfg.ProductTarget,
		MaxAttempts:   cfg.ProductMaxTries,
		ProgressEvery: cfg.ProgressEvery,
		Throttle:      gate,
		Random:        gofakeit.New(cfg.RandomSeed),
		Logger:        observability.Logger,
	})

	summary, err := seeder.Run(ctx)
	if summary != nil {
		log.Printf("Users: %d, categories: %d, products: %d (failed attempts: %d) in %s\n",
			len(summary.Users), len(summary.Categories),
			summary.Products.Created, summary.Products.Failed,
			summary.Elapsed.Round(time.Millisecond))
	}
	if err != nil {
		if errors.Is(err, seed.ErrProductStageSkipped) {
			log.Println("❌ Error: could not create users or categories.")
		}
		return err
	}

	log.Printf("✨ All done! %d products created.\n", summary.Products.Created)
	log.Printf("📧 All seeded users have the password: %s\n", cfg.UserPassword)
	return nil
}
