// Package main runs the task tracker HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/taskboard/tracker/internal/app/runtime"
	"github.com/taskboard/tracker/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (overrides CONFIG_FILE)")
	flag.Parse()

	if *configPath != "" {
		if err := os.Setenv("CONFIG_FILE", *configPath); err != nil {
			log.Fatalf("set CONFIG_FILE: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := runtime.NewApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		log.Printf("Server error: %v", runErr)
	}

	log.Printf("Shutting down...")
	if err := application.Shutdown(context.Background()); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
