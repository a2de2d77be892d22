package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/config"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/orchestrator"
)

func main() {
	cfg, envFile, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envFile != "" {
		log.Info("loaded config", "path", envFile)
	} else {
		log.Info("no .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	orch := orchestrator.NewOrchestrator(cfg, log)

	if err := orch.Start(ctx); err != nil {
		if stopErr := orch.Stop(); stopErr != nil {
			log.Error("error during shutdown", "error", stopErr)
		}
		log.Fatal("failed to start relay", "error", err)
	}

	runErr := orch.Run(ctx)
	cancel()

	if err := orch.Stop(); err != nil {
		log.Error("error during shutdown", "error", err)
	}

	if runErr != nil {
		log.Fatal("relay stopped with error", "error", runErr)
	}
}
