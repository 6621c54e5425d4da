package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"vibedj/internal/shared"
)

func (r *Runner) setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and initialize the local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to write the config file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "skip-db",
				Usage: "skip database creation and migrations",
			},
		},
		Action: r.Setup,
	}
}

func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if _, err := os.Stat(path); err == nil {
		r.writePlainln("config file already exists at %s", path)
	} else if errors.Is(err, os.ErrNotExist) {
		if err := shared.CreateConfigFile(path); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		r.writePlainln("created %s, fill in your Spotify and Groq credentials", path)
	} else {
		return err
	}

	if cmd.Bool("skip-db") {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlainln("database ready at %s", r.config.Database.Path)

	return nil
}
