package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigYAML = `# Loom project configuration
project_name: %s
target: web
out: generated

database:
  type: sqlite
  path: ":memory:"

# Uncomment to enable AI drafting and self-healing repairs.
# ai:
#   base_url: https://api.openai.com/v1
#   model: gpt-4o-mini
#   max_repair_attempts: 2
`

const exampleBlueprint = `# A minimal blueprint. Strands declare data models,
# views declare the screens that present them.

strand Task {
  field title: Text
  field done: Boolean
}

view TaskList {
  list: Task.all()
  theme: dark
}
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Loom project",
		Long: `Initialize a new Loom project with a configuration file and a starter
blueprint.

This creates:
  - loom.yaml configuration file
  - app.loom starter blueprint`,
		Example: `  # Initialize in the current directory
  loom init

  # Initialize in a new directory
  loom init my-project

  # Overwrite an existing configuration
  loom init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			name := filepath.Base(dir)
			if dir == "." {
				if cwd, err := os.Getwd(); err == nil {
					name = filepath.Base(cwd)
				}
			}

			files := []struct {
				name    string
				content string
			}{
				{"loom.yaml", fmt.Sprintf(defaultConfigYAML, name)},
				{"app.loom", exampleBlueprint},
			}
			for _, f := range files {
				path := filepath.Join(dir, f.name)
				if _, err := os.Stat(path); err == nil && !force {
					return fmt.Errorf("%s already exists. Use --force to overwrite", f.name)
				}
				if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", f.name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\nNext: loom generate app.loom")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}
