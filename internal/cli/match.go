package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> [input]...",
		Short: "Report whether each input is accepted",
		Long: `Compile the pattern and print "match" or "no match" for every input.
With no inputs, each line of standard input is tested.

Exit code: 0 if every input matched, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.compile(cmd, args[0])
			if err != nil {
				return err
			}
			log := opts.logger(cmd)
			log.Debugf("compiled %q into %d states", args[0], a.States())

			inputs := args[1:]
			if len(inputs) == 0 {
				if inputs, err = readLines(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("reading inputs: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			p := painter{enabled: colorOutput(out)}
			failed := 0
			for _, in := range inputs {
				ok := a.Matches(in)
				log.LogMatch(args[0], in, ok)
				if ok {
					fmt.Fprintf(out, "%s\t%q\n", p.paint(color.FgGreen, "match"), in)
				} else {
					failed++
					fmt.Fprintf(out, "%s\t%q\n", p.paint(color.FgRed, "no match"), in)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d: %w", failed, len(inputs), ErrNoMatch)
			}
			return nil
		},
	}
}

// readLines returns every line of r without its line ending. Lines have no
// length limit.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
