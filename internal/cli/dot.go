package cli

import (
	"github.com/spf13/cobra"

	"github.com/coregx/thompson/nfa"
)

func newDotCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dot <pattern>",
		Short: "Print the automaton as a Graphviz digraph",
		Example: `  thompson dot '(a|b)*abb' | dot -Tsvg > nfa.svg`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.compile(cmd, args[0])
			if err != nil {
				return err
			}
			return nfa.WriteDOT(cmd.OutOrStdout(), a.NFA())
		},
	}
}
