package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/app"
)

const statusProgressBarWidth = 10

// FormatStatus renders the cross-project status dashboard.
func FormatStatus(resp *app.StatusResponse) string {
	var b strings.Builder

	headers := []string{"CODE", "NAME", "PROGRESS", "DEADLINE", "END", "STAGES", "BUDGET", "BILLED"}
	rows := make([][]string, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		end := Dim("--")
		if p.EndDate != nil {
			end = *p.EndDate
			if p.DaysLeft != nil {
				end += " " + DaysLeftStyled(*p.DaysLeft)
			}
		}

		stages := fmt.Sprintf("%d/%d done", p.Stages.Done, p.Stages.Total)
		if p.Stages.Overdue > 0 {
			stages += " " + StyleRed.Render(fmt.Sprintf("%d late", p.Stages.Overdue))
		}
		progress := RenderProgress(p.ProgressPct, statusProgressBarWidth)
		if !p.FullyPlanned {
			progress += StyleYellow.Render("*")
		}
		budget := fmt.Sprintf("%s / %s", p.Budget.Realized, p.Budget.Planned)
		if p.Budget.OverRealized() {
			budget = StyleRed.Render(budget)
		}

		rows = append(rows, []string{
			StyleGreen.Render(p.ProjectCode),
			Bold(p.ProjectName),
			progress,
			DeadlineIndicator(p.Deadline),
			end,
			stages,
			budget,
			p.InvoiceBilled.String(),
		})
	}
	b.WriteString(RenderTable(headers, rows, 7))

	s := resp.Summary
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %s, %s, %s\n",
		StyleRed.Render(fmt.Sprintf("%d Overdue", s.CountsOverdue)),
		StyleRed.Render(fmt.Sprintf("%d Critical", s.CountsCritical)),
		StyleYellow.Render(fmt.Sprintf("%d Warning", s.CountsWarning)),
		StyleGreen.Render(fmt.Sprintf("%d Safe", s.CountsSafe)),
	))
	b.WriteString(Dim(fmt.Sprintf("Contracts %s · Budget %s realized of %s",
		s.ContractTotal, s.BudgetRealized, s.BudgetPlanned)) + "\n")

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
		}
	}

	return RenderBox("Status", b.String())
}
