package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/thompson/codegen"
)

func newGenCommand(opts *options) *cobra.Command {
	var (
		name    string
		pkg     string
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "gen <pattern>",
		Short: "Generate a standalone Go matcher",
		Long: `Generate Go source defining <name>MatchString(string) bool, which
accepts exactly the inputs the pattern accepts. The output needs only the
standard library.`,
		Example: `  thompson gen '[a-z]+@[a-z]+\.com' --name Email --package valid -o email_gen.go`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.compile(cmd, args[0])
			if err != nil {
				return err
			}
			src, err := codegen.Generate(a.NFA(), codegen.Options{
				Package: pkg,
				Name:    name,
				Pattern: args[0],
			})
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(outFile, src, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outFile, err)
			}
			opts.logger(cmd).Infof("wrote %s (%d states)", outFile, a.States())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Pattern", "identifier prefix of the generated function")
	cmd.Flags().StringVar(&pkg, "package", "main", "package clause of the generated file")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")
	return cmd
}
