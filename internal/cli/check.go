package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/suite"
)

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <suite.yaml>...",
		Short: "Run YAML acceptance suites",
		Long: `Load each suite, compile its patterns and verify every accept,
reject and invalid expectation.

Exit code: 0 if all suites pass, 1 if any expectation fails`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p := painter{enabled: colorOutput(out)}
			config := opts.config(cmd)
			compile := func(pattern string) (suite.Matcher, error) {
				a, err := thompson.CompileWithConfig(pattern, config)
				if err != nil {
					return nil, err
				}
				return a, nil
			}

			failed := 0
			for _, path := range args {
				s, err := suite.LoadFile(path)
				if err != nil {
					return err
				}
				rep := s.Run(compile)
				for _, f := range rep.Failures {
					fmt.Fprintf(out, "%s %s: %s\n", p.paint(color.FgRed, "FAIL"), path, f)
				}
				status := p.paint(color.FgGreen, "ok")
				if !rep.Passed() {
					status = p.paint(color.FgRed, "FAIL")
					failed++
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", status, path, rep)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d suites: %w", failed, len(args), ErrCheckFailed)
			}
			return nil
		},
	}
}
