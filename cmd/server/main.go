package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pdstore/internal/logging"
	"github.com/dmitrijs2005/pdstore/internal/server"
	"github.com/dmitrijs2005/pdstore/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped with error", "error", err)
		os.Exit(1)
	}
}
