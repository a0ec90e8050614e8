package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"blogfront/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	runner := cli.NewRunner()
	if base := os.Getenv("SERVICE_BASE_URL"); base != "" {
		runner.BaseURL = base
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runner.Run(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}
