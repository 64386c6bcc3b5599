// Package main is the entry point for the town walkthrough viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/config"
	"github.com/Faultbox/townview/internal/logger"
	"github.com/Faultbox/townview/internal/viewer"
	"github.com/Faultbox/townview/internal/world"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote config to %s\n", path)
		return
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.FileConfig(), true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Town View ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	w, err := world.Load(cfg.World.ModelPath, cfg.World.SpatialOptions())
	if err != nil {
		logger.Error("failed to load world", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	v, err := viewer.New(cfg, w)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	runErr := v.Run()
	v.Close()
	if runErr != nil {
		logger.Error("viewer error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
