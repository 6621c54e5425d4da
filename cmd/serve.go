package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"vibedj/internal/server"
	"vibedj/internal/shared"
	"vibedj/internal/store"
)

func (r *Runner) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "host to bind, overrides the config file",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to bind, overrides the config file",
			},
		},
		Action: r.Serve,
	}
}

func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: spotify credentials required to serve the assemble endpoint", shared.ErrMissingCredentials)
	}

	var recorder server.Recorder

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warnf("history disabled, failed to open database: %v", err)
	} else {
		defer db.Close()

		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			r.logger.Warnf("history disabled, migrations failed: %v", err)
		} else {
			recorder = store.NewHistoryStore(db)
		}
	}

	handler := server.NewPlaylistHandler(r.generator, r.engine, recorder, r.logger)

	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(handler)

	host := r.config.Server.Host
	if flagHost := cmd.String("host"); flagHost != "" {
		host = flagHost
	}

	port := fmt.Sprintf("%d", r.config.Server.Port)
	if flagPort := cmd.String("port"); flagPort != "" {
		port = flagPort
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.ListenAndServe()
	}()

	r.logger.Infof("listening on %s", addr)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
