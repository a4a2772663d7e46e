package main

import (
	"context"
	"log"
	"os"

	"github.com/eduroot/storefront/internal/buildinfo"
	"github.com/eduroot/storefront/internal/client/cli"
	"github.com/eduroot/storefront/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
