// Orthopoly builds orthonormal polynomial bases on [-1, 1], measures how the
// quadrature rule converges to the analytic inner product and evaluates
// separable multi-dimensional basis functions.
package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "orthopoly"
	version = "v0.1.0"
)

// app holds the state shared by the subcommands once the persistent flags are parsed.
type app struct {
	configPath string
	logLevel   string

	config Config
	log    zerolog.Logger
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Orthonormal polynomial bases on [-1, 1]",
		Version: version,
		Long: `Orthopoly orthonormalizes the monomials 1, x, ..., x^(N-1) on [-1, 1] with the
Gram-Schmidt process under an exact or a sampled inner product, tracks how the
sampled basis converges to the exact one and evaluates products of basis
polynomials in several dimensions.

Examples:
  orthopoly basis --size 5 --strategy quadrature --samples 1000
  orthopoly sweep --size 5 --samples 100,1000,10000 --workers 4 --format json
  orthopoly eval --size 5 --index 1,0,2,3 --random 10 --seed demo
  orthopoly indices --dims 2 --degree 3`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(newBasisCmd(a))
	rootCmd.AddCommand(newSweepCmd(a))
	rootCmd.AddCommand(newEvalCmd(a))
	rootCmd.AddCommand(newIndicesCmd(a))

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) (err error) {

	if a.config, err = loadConfig(a.configPath); err != nil {
		return
	}

	if cmd.Flags().Changed("log-level") {
		a.config.Log.Level = a.logLevel
	}

	var level zerolog.Level
	if level, err = zerolog.ParseLevel(a.config.Log.Level); err != nil {
		return
	}

	a.log = newLogger(cmd.ErrOrStderr(), level)

	a.log.Debug().Str("config", a.configPath).Str("command", cmd.Name()).Msg("configuration loaded")

	return
}

// newLogger returns a console logger if w is a terminal and a JSON logger otherwise.
func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", appName).Logger()
}
