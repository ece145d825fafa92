package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sole-and-ankle/app"
	"sole-and-ankle/config"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flush, err := app.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}
	defer flush()

	handler, err := app.Initialize(cfg)
	if err != nil {
		zap.S().Fatal(err)
	}

	addr := cfg.Addr()
	zap.S().Infof("Server starting on %s", addr)
	zap.S().Infof("Render endpoint: POST http://localhost:%s/cards/render?format=html", cfg.Port)

	if err := http.ListenAndServe(addr, handler); err != nil {
		zap.S().Fatalf("Server failed to start: %v", err)
	}
}
