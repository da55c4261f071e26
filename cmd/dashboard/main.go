package main

import (
	"flag"
	"log"
	"os"

	"CoinScope/internal/di"
	"CoinScope/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/dashboard.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s symbol=%s", cfg.Environment, cfg.Dashboard.Symbol)

	app, err := di.InitializeDashboard(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
