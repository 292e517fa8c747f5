package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <blueprint-file>",
		Short: "Compile a blueprint into application artifacts",
		Long: `Parse a blueprint file and generate artifacts for the configured target.

Generated migrations are validated against the configured database before
anything is written. With an AI endpoint configured, failing migrations are
repaired automatically within the repair budget.`,
		Example: `  # Generate with defaults (web target, ./generated)
  loom generate app.loom

  # Backend only, custom output directory
  loom generate app.loom --target api --out build`,
		Aliases: []string{"gen"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			logger := loggerFrom(cmd.Context())

			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading blueprint: %w", err)
			}

			eng, cleanup, err := newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := eng.Run(cmd.Context(), string(source))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d files to %s (run %s)\n",
				len(m.Files), cfg.OutDir, m.Metadata.RunID)
			for _, f := range m.Files {
				fmt.Fprintf(out, "  %s\n", f.Path)
			}
			return nil
		},
	}
	return cmd
}
