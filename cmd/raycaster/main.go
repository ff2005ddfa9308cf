// Package main is the entry point for the raycaster viewer.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/raycaster/internal/game"
	"github.com/samdwyer/raycaster/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_RAYCASTER_API_KEY and RAYCASTER_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Viewer will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_RAYCASTER_API_KEY")
	if apiKey == "" {
		// Leave any OTEL_* settings from the environment alone.
		return
	}

	dataset := os.Getenv("HONEYCOMB_RAYCASTER_DATASET")
	if dataset == "" {
		dataset = "raycaster" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
