package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/app"
	"taskboard/internal/config"
)

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "initializing: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "running: %v\n", err)
		os.Exit(1)
	}
}
