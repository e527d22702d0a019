package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atoshub/go-site/internal/config"
	"github.com/atoshub/go-site/pkg/prompt"
	"github.com/atoshub/go-site/pkg/validation"
)

// app holds the state shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// driver overrides the terminal prompts of the contact command.
	driver prompt.PromptDriver
	// lookupEnv overrides the process environment when loading config.
	lookupEnv func(string) (string, bool)
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut}
}

func (a *app) execute(ctx context.Context, args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "atoshub",
		Short:         "Atos Hub site server and tools",
		Long:          `Serves the Atos Hub blog and contact API, and provides terminal tools for contact submissions, document checks and simulations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.contactCmd(),
		a.checkCmd(),
		a.simulateCmd(),
		a.schemaCmd(),
		a.routesCmd(),
		a.leadsCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.lookupEnv != nil {
		cfg, err = config.LoadWithEnv(a.configPath, a.lookupEnv)
	} else {
		cfg, err = config.Load(a.configPath)
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger
	return nil
}

// newLogger builds the production JSON logger on stderr. verbose lowers the
// level to debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// schema returns the validation schema for the configured locale.
func (a *app) schema() validation.Schema {
	return validation.NewSchema(validation.WithMessages(validation.CatalogFor(a.cfg.Locale)))
}
