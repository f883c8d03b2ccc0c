package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yungbote/foodgram-backend/internal/app"
)

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()
	if envErr != nil {
		a.Log.Debug("no .env file loaded", "error", envErr)
	}

	if err := a.Run(ctx); err != nil {
		a.Log.Error("server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
}
