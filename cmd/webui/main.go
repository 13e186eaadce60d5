package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/myhealth/internal/buildinfo"
	"github.com/dmitrijs2005/myhealth/internal/client/config"
	"github.com/dmitrijs2005/myhealth/internal/client/web"
	"github.com/dmitrijs2005/myhealth/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	app, err := web.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "web console stopped", "error", err)
	}

}
