package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"vibedj/internal/ai"
	"vibedj/internal/formatter"
	"vibedj/internal/playlist"
	"vibedj/internal/shared"
	"vibedj/internal/store"
)

func (r *Runner) generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a playlist for a vibe",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "vibe",
				Aliases:  []string{"v"},
				Usage:    "mood or theme to build the playlist around",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format (text, json, markdown, csv)",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "indent JSON output",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write output to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "record the playlist in the local history database",
			},
		},
		Action: r.Generate,
	}
}

func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	vibe := cmd.String("vibe")

	pl := r.generatePlaylist(ctx, vibe)

	if cmd.Bool("save") {
		if err := r.recordHistory("generate", vibe, pl); err != nil {
			r.logger.Warnf("failed to record history: %v", err)
		}
	}

	output, err := renderPlaylist(pl, cmd.String("format"), cmd.Bool("pretty"))
	if err != nil {
		return err
	}

	if path := cmd.String("out"); path != "" {
		if err := os.WriteFile(path, output, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		r.writePlainln("wrote playlist to %s", path)

		return nil
	}

	r.writePlain("%s", string(output))

	return nil
}

// generatePlaylist runs the model and falls back to the static catalog
// when nothing usable comes back.
func (r *Runner) generatePlaylist(ctx context.Context, vibe string) playlist.Playlist {
	if r.generator == nil {
		r.logger.Debug("no generator configured, using fallback catalog")
		return playlist.Fallback(vibe)
	}

	raw, err := r.generator.Generate(ctx, ai.BuildPrompt(vibe))
	if err != nil {
		r.logger.Warnf("generation failed, using fallback: %v", err)
		return playlist.Fallback(vibe)
	}

	pl := playlist.Parse(raw)
	if pl.Empty() {
		r.logger.Warn("model response yielded no songs, using fallback")
		return playlist.Fallback(vibe)
	}

	pl.ApplyDefaults()

	return pl
}

func (r *Runner) recordHistory(kind, label string, payload any) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}

	defer db.Close()

	_, err = store.NewHistoryStore(db).Save(kind, label, payload)

	return err
}

func renderPlaylist(pl playlist.Playlist, format string, pretty bool) ([]byte, error) {
	switch format {
	case "json":
		return shared.MarshalJSON(pl, pretty)
	case "markdown", "md":
		return formatter.PlaylistToMarkdown("Playlist", pl), nil
	case "csv":
		return formatter.PlaylistToCSV(pl)
	case "text", "":
		return formatter.PlaylistToText(pl), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}
