package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/urfave/cli/v3"

	"vibedj/internal/formatter"
	"vibedj/internal/playlist"
	"vibedj/internal/shared"
	"vibedj/internal/tasks"
)

func (r *Runner) assembleCommand() *cli.Command {
	return &cli.Command{
		Name:  "assemble",
		Usage: "Resolve songs on Spotify and create a playlist from them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "name of the playlist to create",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "playlist description",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "JSON playlist file produced by the generate command",
			},
			&cli.StringFlag{
				Name:    "vibe",
				Aliases: []string{"v"},
				Usage:   "generate a playlist for this vibe instead of reading a file",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "record the assembly result in the local history database",
			},
		},
		Action: r.Assemble,
	}
}

func (r *Runner) Assemble(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: spotify credentials required, run setup and auth first", shared.ErrMissingCredentials)
	}

	token := r.config.Credentials.Spotify.AccessToken
	if token == "" {
		return fmt.Errorf("%w: no access token in config, run the auth command", shared.ErrNotAuthenticated)
	}

	pl, err := r.loadSongs(ctx, cmd)
	if err != nil {
		return err
	}

	if pl.Empty() {
		return fmt.Errorf("%w: no songs to assemble", shared.ErrInvalidInput)
	}

	req := tasks.AssemblyRequest{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Songs:       pl.Songs,
	}

	progress := make(chan tasks.ProgressUpdate, 16)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for update := range progress {
			r.writePlainln("[%s] %s", update.Phase, update.Message)
		}
	}()

	result, err := r.engine.Assemble(ctx, progress, token, req)

	close(progress)
	wg.Wait()

	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		if err := r.recordHistory("assemble", req.Name, result); err != nil {
			r.logger.Warnf("failed to record history: %v", err)
		}
	}

	r.writePlain("%s", string(formatter.ReportToText(result)))

	return nil
}

// loadSongs reads the playlist from --file when given, otherwise
// generates one for --vibe.
func (r *Runner) loadSongs(ctx context.Context, cmd *cli.Command) (playlist.Playlist, error) {
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return playlist.Playlist{}, fmt.Errorf("failed to read playlist file: %w", err)
		}

		var pl playlist.Playlist
		if err := json.Unmarshal(data, &pl); err != nil {
			return playlist.Playlist{}, fmt.Errorf("%w: invalid playlist file: %v", shared.ErrInvalidInput, err)
		}

		pl.ApplyDefaults()

		return pl, nil
	}

	if vibe := cmd.String("vibe"); vibe != "" {
		return r.generatePlaylist(ctx, vibe), nil
	}

	return playlist.Playlist{}, fmt.Errorf("%w: either --file or --vibe is required", shared.ErrMissingArgument)
}
