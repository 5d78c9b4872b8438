package cli

import (
	"fmt"

	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"anggaran", "b"},
		Short:   "Manage planned and realized budget lines",
	}

	cmd.AddCommand(
		newBudgetListCmd(app),
		newBudgetAddCmd(app),
		newBudgetUpdateCmd(app),
		newBudgetRemoveCmd(app),
	)

	return cmd
}

// applyAndShowBudget commits intents and prints the budget breakdown.
func applyAndShowBudget(cmd *cobra.Command, app *App, p *domain.Project, msg string, intents ...ledger.Intent) error {
	updated, err := app.Ledger.Apply(cmd.Context(), p.ID, intents...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	if len(updated.BudgetLines) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBudget(updated))
	}
	return nil
}

func newBudgetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls"},
		Short:   "List budget lines with per-stage totals",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(p.BudgetLines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No budget lines yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBudget(p))
			return nil
		},
	}
}

// budgetFields holds the line flags shared by add and update.
type budgetFields struct {
	stage, category, description string
	planned, realized            moneyFlag
	files                        []string
}

func (f *budgetFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.stage, "stage", "", "Stage number or id (empty for none)")
	cmd.Flags().StringVar(&f.category, "category", "", "Category (kategori)")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().Var(&f.planned, "planned", "Planned amount in rupiah")
	cmd.Flags().Var(&f.realized, "realized", "Realized amount in rupiah")
	cmd.Flags().StringArrayVar(&f.files, "file", nil, "Attached document path (repeatable)")
}

// apply overlays every flag the user set onto line.
func (f *budgetFields) apply(cmd *cobra.Command, p *domain.Project, line *domain.BudgetLine) error {
	changed := cmd.Flags().Changed
	if changed("stage") {
		id, err := resolveStageID(p, f.stage)
		if err != nil {
			return err
		}
		line.StageID = id
	}
	if changed("category") {
		line.Category = f.category
	}
	if changed("description") {
		line.Description = f.description
	}
	if changed("planned") {
		line.Planned = domain.Money(f.planned)
	}
	if changed("realized") {
		line.Realized = domain.Money(f.realized)
	}
	if changed("file") {
		line.Files = f.files
	}
	return nil
}

func newBudgetAddCmd(app *App) *cobra.Command {
	var fields budgetFields
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var line domain.BudgetLine
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				var in budgetInput
				if err := runBudgetForm(p, &in); err != nil {
					return err
				}
				if line, err = in.line(); err != nil {
					return err
				}
			}
			if err := fields.apply(cmd, p, &line); err != nil {
				return err
			}

			return applyAndShowBudget(cmd, app, p, fmt.Sprintf("Added budget line %q to %s", line.Description, p.DisplayID()),
				ledger.AddBudgetLine{Line: line})
		},
	}

	fields.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the line in with a form")

	return cmd
}

func newBudgetUpdateCmd(app *App) *cobra.Command {
	var fields budgetFields

	cmd := &cobra.Command{
		Use:   "update PROJECT LINE",
		Short: "Change a budget line",
		Long:  "LINE is the line id or a unique prefix of it, as shown by `budget list`.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			line, err := resolveLine(p, args[1])
			if err != nil {
				return err
			}
			if err := fields.apply(cmd, p, &line); err != nil {
				return err
			}
			return applyAndShowBudget(cmd, app, p, fmt.Sprintf("Updated budget line %q", line.Description),
				ledger.UpdateBudgetLine{Line: line})
		},
	}

	fields.register(cmd)

	return cmd
}

func newBudgetRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove PROJECT LINE",
		Aliases: []string{"rm"},
		Short:   "Remove a budget line",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			line, err := resolveLine(p, args[1])
			if err != nil {
				return err
			}
			return applyAndShowBudget(cmd, app, p, fmt.Sprintf("Removed budget line %q", line.Description),
				ledger.RemoveBudgetLine{LineID: line.ID})
		},
	}
}
