// Package cli implements the thompson command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// Errors that map to a non-zero exit status without an error message; the
// command has already explained itself on stdout.
var (
	ErrNoMatch     = errors.New("some inputs did not match")
	ErrCheckFailed = errors.New("suite failed")
)

// options are the persistent flags shared by every subcommand.
type options struct {
	logLevel    string
	legacyDot   bool
	noPrefilter bool
}

// NewRootCommand creates and returns the root cobra command for thompson
func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "thompson",
		Short: "Whole-string pattern matching with Thompson NFAs",
		Long: `thompson compiles patterns into Thompson NFAs and decides whether
whole input strings are accepted.

It can test inputs, draw the automaton as Graphviz, generate a standalone
Go matcher, and run YAML acceptance suites.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logger.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid --log-level %q: want trace, debug, info, warn or error", opts.logLevel)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	flags.BoolVar(&opts.legacyDot, "legacy-dot", false, "compile '.' as a move that consumes nothing")
	flags.BoolVar(&opts.noPrefilter, "no-prefilter", false, "disable literal prefiltering")

	cmd.AddCommand(newMatchCommand(opts))
	cmd.AddCommand(newDotCommand(opts))
	cmd.AddCommand(newGenCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoMatch), errors.Is(err, ErrCheckFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
}

func (o *options) logger(cmd *cobra.Command) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), o.logLevel)
}

func (o *options) config(cmd *cobra.Command) thompson.Config {
	config := thompson.DefaultConfig()
	config.LegacyDot = o.legacyDot
	config.Prefilter = !o.noPrefilter
	config.Logger = o.logger(cmd)
	return config
}

func (o *options) compile(cmd *cobra.Command, pattern string) (*thompson.Automaton, error) {
	a, err := thompson.CompileWithConfig(pattern, o.config(cmd))
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return a, nil
}

// colorOutput reports whether w is a terminal that should get colors.
func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd()) && !color.NoColor
}

// painter colors text only when enabled.
type painter struct {
	enabled bool
}

func (p painter) paint(attr color.Attribute, s string) string {
	if !p.enabled {
		return s
	}
	return color.New(attr).Sprint(s)
}
