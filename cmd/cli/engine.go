package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Maddesumit/synthetic-arb-engine/internal/config"
	"github.com/Maddesumit/synthetic-arb-engine/internal/engine"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

// RunEngine loads the config, builds the engine and runs it until SIGINT or
// SIGTERM arrives.
func RunEngine(configPath string) {
	log := logger.Get()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load config")
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Engine exited with error")
	}
}
