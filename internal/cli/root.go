package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/polysolve/internal/infrastructure/config"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/server"
)

var (
	cfgFile  string
	port     string
	host     string
	logLevel string
	dev      bool
	outStyle string
)

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the HTTP server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "polysolve",
		Short: "Polynomial and linear system solver service",
		Long: `polysolve solves polynomial equations exactly where it can and
numerically where it must: closed forms up to degree four, Durand-Kerner
iteration beyond, and Gaussian elimination for 2x2 and 3x3 linear systems.

Configuration comes from the environment (PORT, HOST, LOG_LEVEL,
SOLVER_FORMAT, ...) or, with --config, from a YAML or TOML file.
Flags override either.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runServe,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML or TOML config file; replaces the environment")
	flags.StringVar(&port, "port", "", "server port (overrides PORT)")
	flags.StringVar(&host, "host", "", "server host (overrides HOST)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.BoolVar(&dev, "dev", false, "development logging")
	flags.StringVar(&outStyle, "format", "", "output style: ascii, unicode, latex (overrides SOLVER_FORMAT)")

	root.AddCommand(newServeCommand(), newSolveCommand(), newVersionCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "polysolve %s\n", server.Version)
		},
	}
}

// loadConfig reads the config file or the environment and applies flag
// overrides
func loadConfig() (*config.Config, error) {
	load := config.Load
	if cfgFile != "" {
		load = func() (*config.Config, error) { return config.LoadFile(cfgFile) }
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if dev {
		cfg.Logging.Development = true
	}
	if outStyle != "" {
		cfg.Solver.Format = outStyle
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
