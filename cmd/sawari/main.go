package main

import (
	"context"
	"log"

	"github.com/kampanlabs/sawari/internal/client/cli"
	"github.com/kampanlabs/sawari/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
