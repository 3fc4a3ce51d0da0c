// Package cli implements the cvsscalc command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/build-flow-labs/cvsscalc/internal/config"
	"github.com/spf13/cobra"
)

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCmd builds the cvsscalc root command with all subcommands attached.
func NewRootCmd(version string) *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "cvsscalc",
		Short: "CVSS v3.x Base Score calculator",
		Long: `cvsscalc computes a CVSS Base Score from the eight base metrics:

  AV  Attack Vector         AC  Attack Complexity
  PR  Privileges Required   UI  User Interaction
  S   Scope                 C   Confidentiality
  I   Integrity             A   Availability

Run "cvsscalc score" to be prompted for each metric, or pass a vector
string such as CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: $"+config.EnvPath+" or built-in defaults)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	root.AddCommand(newScoreCmd(g))
	root.AddCommand(newMetricsCmd())
	return root
}

// setup loads the configuration and builds the stderr logger.
func (g *globalOptions) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	source := cfg.Source
	if source == "" {
		source = "(built-in)"
	}
	logger.Debug("config loaded", "source", source, "rounding", cfg.Rounding, "output", cfg.Output)
	return cfg, logger, nil
}
