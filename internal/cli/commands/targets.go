package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewTargetsCommand creates the targets command.
func NewTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List available target platforms",
		Long: `List every target the generate command accepts: the built-in targets
plus any external plugins discovered under the plugins directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			logger := loggerFrom(cmd.Context())

			reg, err := newRegistry(cfg, logger)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Target", "Description"})
			for _, name := range reg.Targets() {
				entry, _ := reg.Get(name)
				t.AppendRow(table.Row{entry.Target, entry.Description})
			}
			t.Render()
			return nil
		},
	}
}
