package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"

	"vibedj/internal/server"
	"vibedj/internal/services"
	"vibedj/internal/shared"
)

const oauthTimeout = 2 * time.Minute

func (r *Runner) authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize with Spotify and store the token in the config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the config file to update",
				Value:   "config.toml",
			},
		},
		Action: r.Auth,
	}
}

func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.RequireSpotify(); err != nil {
		return err
	}

	spotify, ok := r.catalog.(*services.SpotifyService)
	if !ok {
		return fmt.Errorf("%w: spotify service unavailable", shared.ErrMissingCredentials)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state: %w", err)
	}

	addr, err := callbackAddr(r.config.Credentials.Spotify.RedirectURI)
	if err != nil {
		return err
	}

	handler := server.NewOAuthHandler(spotify.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Errorf("callback server error: %v", err)
		}
	}()

	defer srv.Shutdown(context.Background())

	authURL := spotify.GetAuthURL(state)

	r.writePlainln("opening browser for Spotify authorization...")
	r.writePlainln("if the browser does not open, visit:\n%s", authURL)

	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser: %v", err)
	}

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}

		if err := r.config.Credentials.Spotify.Update(result.Token); err != nil {
			return err
		}

		if err := shared.SaveConfig(cmd.String("config"), r.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		r.writePlainln("authorization complete, token saved")

		return nil
	case <-time.After(oauthTimeout):
		return fmt.Errorf("%w: no callback received within %s", shared.ErrTimeout, oauthTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// callbackAddr derives the local listen address from the configured
// redirect URI.
func callbackAddr(redirectURI string) (string, error) {
	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect uri: %v", shared.ErrInvalidConfig, err)
	}

	port := parsed.Port()
	if port == "" {
		port = "3000"
	}

	return ":" + port, nil
}
