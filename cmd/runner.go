package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"vibedj/internal/ai"
	"vibedj/internal/services"
	"vibedj/internal/shared"
	"vibedj/internal/tasks"
)

// Runner holds the shared dependencies of the CLI commands. Catalog and
// Generator may be nil when credentials are absent; each command checks
// what it needs and fails with a configuration error rather than at
// request time.
type Runner struct {
	config    *shared.Config
	catalog   services.Catalog
	generator ai.Generator
	engine    *tasks.AssemblyEngine
	logger    *log.Logger
	out       io.Writer
}

type RunnerOpts struct {
	Config    *shared.Config
	Catalog   services.Catalog
	Generator ai.Generator
	Logger    *log.Logger
	Out       io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	runner := &Runner{
		config:    opts.Config,
		catalog:   opts.Catalog,
		generator: opts.Generator,
		logger:    opts.Logger,
		out:       opts.Out,
	}

	if opts.Catalog != nil {
		runner.engine = tasks.NewAssemblyEngine(opts.Catalog, opts.Logger)
	}

	return runner
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		r.setupCommand(),
		r.authCommand(),
		r.generateCommand(),
		r.assembleCommand(),
		r.serveCommand(),
		r.historyCommand(),
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	encoded, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, string(encoded))

	return nil
}

func (r *Runner) writePlain(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) writePlainln(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
