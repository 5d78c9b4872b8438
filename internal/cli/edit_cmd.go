package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Reorder stages and cycle their status in an interactive editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("edit needs an interactive terminal")
			}
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			prog := tea.NewProgram(newEditModel(app, p, app.Orphans),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := prog.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(editModel); ok && m.Dirty() {
				fmt.Fprintf(cmd.OutOrStdout(), "Discarded %d unsaved change(s)\n", len(m.pending))
			}
			return nil
		},
	}
}
