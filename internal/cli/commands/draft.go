package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewDraftCommand creates the draft command.
func NewDraftCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "draft <description>",
		Short: "Draft a blueprint from a plain-language description",
		Long: `Ask the configured AI model to write a blueprint for an application
described in plain language. Output that fails to parse is sent back to the
model with the error until it is valid or the repair budget runs out.

Requires ai.base_url in loom.yaml or the LOOM_AI__BASE_URL variable.`,
		Example: `  # Print the draft
  loom draft "a todo app with projects and due dates"

  # Write it to a file
  loom draft "an inventory tracker" -f app.loom`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			logger := loggerFrom(cmd.Context())

			eng, cleanup, err := newEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			source, err := eng.Draft(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(source+"\n"), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote blueprint to %s\n", outFile)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write the blueprint to a file instead of stdout")
	return cmd
}
