package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"vibedj/internal/shared"
	"vibedj/internal/store"
)

func (r *Runner) historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent playlist generations and assemblies",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum number of entries to show",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit entries as JSON",
			},
		},
		Action: r.History,
	}
}

func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.config.Database.Path); err != nil {
		return fmt.Errorf("%w: no database at %s, run the setup command first", shared.ErrMissingConfig, r.config.Database.Path)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}

	defer db.Close()

	entries, err := store.NewHistoryStore(db).List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		r.writePlainln("no history yet")
		return nil
	}

	for _, entry := range entries {
		r.writePlainln("%s  %-9s %s", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Kind, entry.Label)
	}

	return nil
}
