package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"vibedj/internal/ai"
	"vibedj/internal/services"
	"vibedj/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	if config.RequireSpotify() == nil {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			catalog = svc
		}
	}

	var generator ai.Generator
	if config.RequireGroq() == nil {
		if client, err := ai.NewGroqClient(config.Credentials.Groq.APIKey, config.Credentials.Groq.Model); err == nil {
			generator = client
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Catalog:   catalog,
		Generator: generator,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "vibedj",
		Usage:    "Turn a vibe into a playlist and publish it to Spotify",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
