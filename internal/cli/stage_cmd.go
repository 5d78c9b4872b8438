package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stage",
		Aliases: []string{"tahapan", "s"},
		Short:   "Manage the weighted stages of a project",
		Long: `Stages are addressed by their number in the sequence (1, 2, ...) or by id.
Stage weights of one project never add up to more than 100%.`,
	}

	cmd.AddCommand(
		newStageListCmd(app),
		newStageAddCmd(app),
		newStageUpdateCmd(app),
		newStageStatusCmd(app),
		newStageInvoiceCmd(app),
		newStageMoveCmd(app, "up"),
		newStageMoveCmd(app, "down"),
		newStageRemoveCmd(app),
	)

	return cmd
}

// applyAndShow commits intents and prints the resulting stage table.
func applyAndShow(cmd *cobra.Command, app *App, p *domain.Project, msg string, intents ...ledger.Intent) error {
	updated, err := app.Ledger.Apply(cmd.Context(), p.ID, intents...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, msg)
	if len(updated.Stages) > 0 {
		fmt.Fprint(out, formatter.FormatStages(updated.Stages, app.now()))
	}
	fmt.Fprintf(out, "Progress %s, %s allocated\n",
		formatter.Percent(updated.Progress), formatter.Percent(ledger.TotalWeight(updated.Stages)))
	return nil
}

func newStageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls"},
		Short:   "List the stages of a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(p.Stages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stages yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStages(p.Stages, app.now()))
			if !ledger.IsFullyAllocated(p.Stages) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s of weight left to allocate\n",
					formatter.Percent(ledger.RemainingWeight(p.Stages)))
			}
			return nil
		},
	}
}

func newStageAddCmd(app *App) *cobra.Command {
	var name, status string
	var weight float64
	var start, end dateFlag
	var files []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Append a stage to the end of the sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var s domain.Stage
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				in := stageInput{weight: strconv.FormatFloat(ledger.RemainingWeight(p.Stages), 'f', -1, 64)}
				if err := runStageForm("New stage for "+p.DisplayID(), &in); err != nil {
					return err
				}
				if s, err = in.stage(); err != nil {
					return err
				}
			} else {
				st, err := domain.ParseStageStatus(strings.ToLower(status))
				if err != nil {
					return err
				}
				s = domain.Stage{Name: name, Weight: weight, Status: st, StartDate: start.t, EndDate: end.t}
			}
			s.Files = files

			return applyAndShow(cmd, app, p, fmt.Sprintf("Added stage %q to %s", s.Name, p.DisplayID()),
				ledger.AddStage{Stage: s})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stage name")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Stage weight in percent")
	cmd.Flags().StringVar(&status, "status", "", "pending|progress|done")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&end, "end", "End date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Attached document path (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the stage in with a form")
	cmd.MarkFlagsMutuallyExclusive("interactive", "name")

	return cmd
}

func newStageUpdateCmd(app *App) *cobra.Command {
	var name, status string
	var weight float64
	var start, end dateFlag
	var files []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "update PROJECT STAGE",
		Short: "Change a stage's name, weight, status, dates or files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cur, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}

			in := ledger.UpdateStage{
				StageID:   cur.ID,
				Name:      cur.Name,
				Weight:    cur.Weight,
				Status:    cur.Status,
				StartDate: cur.StartDate,
				EndDate:   cur.EndDate,
				Files:     cur.Files,
			}

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				form := stageInput{
					name:   cur.Name,
					weight: strconv.FormatFloat(cur.Weight, 'f', -1, 64),
					status: string(cur.Status),
					start:  domain.FormatDate(cur.StartDate),
					end:    domain.FormatDate(cur.EndDate),
				}
				if err := runStageForm(fmt.Sprintf("Stage %d of %s", cur.Number, p.DisplayID()), &form); err != nil {
					return err
				}
				s, err := form.stage()
				if err != nil {
					return err
				}
				in.Name, in.Weight, in.Status, in.StartDate, in.EndDate = s.Name, s.Weight, s.Status, s.StartDate, s.EndDate
			}

			changed := cmd.Flags().Changed
			if changed("name") {
				in.Name = name
			}
			if changed("weight") {
				in.Weight = weight
			}
			if changed("status") {
				st, err := domain.ParseStageStatus(strings.ToLower(status))
				if err != nil {
					return err
				}
				in.Status = st
			}
			if changed("start") {
				in.StartDate = start.t
			}
			if changed("end") {
				in.EndDate = end.t
			}
			if changed("file") {
				in.Files = files
			}

			return applyAndShow(cmd, app, p, fmt.Sprintf("Updated stage %d of %s", cur.Number, p.DisplayID()), in)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stage name")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Stage weight in percent")
	cmd.Flags().StringVar(&status, "status", "", "pending|progress|done")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD, none to clear)")
	cmd.Flags().Var(&end, "end", "End date (YYYY-MM-DD, none to clear)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Replace attached document paths (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit the stage with a form")

	return cmd
}

func newStageStatusCmd(app *App) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "status PROJECT STAGE [pending|progress|done]",
		Short: "Set a stage's execution status",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if next == (len(args) == 3) {
				return fmt.Errorf("give either a status or --next")
			}
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}

			target := s.Status.Next()
			if !next {
				if target, err = domain.ParseStageStatus(strings.ToLower(args[2])); err != nil {
					return err
				}
			}
			return applyAndShow(cmd, app, p, fmt.Sprintf("Stage %d is now %s", s.Number, target),
				ledger.SetStageStatus{StageID: s.ID, Status: target})
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Cycle pending → progress → done → pending")

	return cmd
}

func newStageInvoiceCmd(app *App) *cobra.Command {
	var date, expected dateFlag
	var amount moneyFlag
	var payment paymentStatusFlag

	cmd := &cobra.Command{
		Use:   "invoice PROJECT STAGE",
		Short: "Record a stage's invoice dates, amount and payment status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}

			in := ledger.SetStageInvoice{
				StageID:             s.ID,
				InvoiceDate:         s.InvoiceDate,
				ExpectedInvoiceDate: s.ExpectedInvoiceDate,
				Amount:              s.InvoiceAmount,
				PaymentStatus:       s.PaymentStatus,
			}
			changed := cmd.Flags().Changed
			if changed("date") {
				in.InvoiceDate = date.t
			}
			if changed("expected") {
				in.ExpectedInvoiceDate = expected.t
			}
			if changed("amount") {
				v := domain.Money(amount)
				in.Amount = &v
			}
			if changed("payment") {
				in.PaymentStatus = domain.PaymentStatus(payment)
			}

			return applyAndShow(cmd, app, p, fmt.Sprintf("Recorded invoice for stage %d of %s", s.Number, p.DisplayID()), in)
		},
	}

	cmd.Flags().Var(&date, "date", "Invoice date (YYYY-MM-DD, none to clear)")
	cmd.Flags().Var(&expected, "expected", "Expected invoice date (YYYY-MM-DD, none to clear)")
	cmd.Flags().Var(&amount, "amount", "Invoiced amount in rupiah")
	cmd.Flags().Var(&payment, "payment", "Payment status")

	return cmd
}

func newStageMoveCmd(app *App, direction string) *cobra.Command {
	return &cobra.Command{
		Use:   direction + " PROJECT STAGE",
		Short: "Move a stage " + direction + " one position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}
			var in ledger.Intent = ledger.MoveStageUpIntent{StageID: s.ID}
			if direction == "down" {
				in = ledger.MoveStageDownIntent{StageID: s.ID}
			}
			return applyAndShow(cmd, app, p, fmt.Sprintf("Moved %q %s", s.Name, direction), in)
		},
	}
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove PROJECT STAGE",
		Aliases: []string{"rm"},
		Short:   "Remove a stage and renumber the rest",
		Long: `Removes the stage. Its budget lines are detached from it or deleted
along with it, depending on PROYEK_ORPHAN_POLICY.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}
			return applyAndShow(cmd, app, p, fmt.Sprintf("Removed stage %q", s.Name),
				ledger.RemoveStageIntent{StageID: s.ID})
		},
	}
}
