package main

import (
	"flag"
	"log"
	"os"

	"CoinScope/internal/di"
	"CoinScope/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/predictor.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Model load happens inside initialization; a missing artifact
	// aborts startup here, never at request time.
	app, err := di.InitializePredictor(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("env=%s model=%s", cfg.Environment, cfg.Predictor.ModelPath)

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
