package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/eshaffer321/asset-divider/internal/cli"
)

func main() {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
