// Command catalogstub serves a local catalog API for seeding dry runs.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogseed/internal/catalogstub"
	"catalogseed/internal/config"
	"catalogseed/internal/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.SetLogger(observability.NewLogger(os.Stdout, cfg.Env))

	db, err := catalogstub.OpenDatabase(cfg.StubDBDriver, cfg.StubDBDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	app := catalogstub.NewServer(db, 0).App()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down catalog stub...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Catalog stub listening on :%s (%s)", cfg.StubPort, cfg.StubDBDriver)
	if err := app.Listen(":" + cfg.StubPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
