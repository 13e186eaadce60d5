package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/myhealth/internal/buildinfo"
	"github.com/dmitrijs2005/myhealth/internal/client/cli"
	"github.com/dmitrijs2005/myhealth/internal/client/config"
	"github.com/dmitrijs2005/myhealth/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
