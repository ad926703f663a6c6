package main

import (
	"flag"
	"log"
	"os"

	"StockDesk/internal/di"
	"StockDesk/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s upstream=%s session=%s cache=%s", cfg.Environment, cfg.Upstream.BaseURL, cfg.Session.Backend, cfg.Cache.Backend)

	// Wire DI: Initialize all dependencies
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()

	if cfg.Journal.Enabled {
		log.Printf("kafka: trade journal brokers=%v topic=%s", cfg.Journal.Brokers, cfg.Journal.Topic)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		cleanup()
		os.Exit(1)
	}
}
