package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
)

const listProgressBarWidth = 10

// FormatProjectList renders the project table of `project list`.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	headers := []string{"CODE", "NAME", "CLIENT", "JENIS", "STATUS", "PROGRESS", "CONTRACT", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		end := Dim("--")
		if p.EndDate != nil {
			end = p.EndDate.Format(domain.DateLayout) + " " + DaysLeftStyled(domain.DaysUntil(*p.EndDate, now))
		}
		name := Bold(p.Name)
		if p.IsArchived() {
			name += " " + Dim("(archived)")
		}
		rows = append(rows, []string{
			StyleGreen.Render(p.DisplayID()),
			name,
			p.Client,
			p.JobType,
			ProjectStatusPill(p.Status),
			RenderProgress(p.Progress, listProgressBarWidth),
			p.ContractValue.String(),
			end,
		})
	}
	return RenderTable(headers, rows, 6)
}

// FormatProjectDetail renders the header, stage table and budget breakdown
// of one project.
func FormatProjectDetail(p *domain.Project, now time.Time) string {
	var b strings.Builder

	title := fmt.Sprintf("%s  %s", StyleGreen.Render(p.DisplayID()), Bold(p.Name))
	if p.Synthetic {
		title += "  " + StylePurple.Render("[snapshot]")
	}
	b.WriteString(title + "\n\n")

	kv := func(k, v string) {
		if v == "" {
			v = Dim("--")
		}
		b.WriteString(Dim(padRight(k, 12)) + v + "\n")
	}
	kv("Client", p.Client)
	kv("Jenis", p.JobType)
	kv("Location", p.Location)
	kv("Contract", strings.TrimSpace(p.ContractNumber+" "+p.ContractValue.String()))
	kv("Status", ProjectStatusPill(p.Status))
	dates := p.StartDate.Format(domain.DateLayout) + " → " + domain.FormatDate(p.EndDate)
	if p.EndDate != nil {
		dates += "  " + DaysLeftStyled(domain.DaysUntil(*p.EndDate, now))
	}
	kv("Schedule", dates)
	if p.Tender.Source == domain.SourceTender {
		kv("Tender", strings.TrimSpace(p.Tender.Number+" "+p.Tender.Agency))
	}
	kv("Deadline", DeadlineIndicator(ledger.DeadlineStateOf(*p, now)))
	kv("Progress", RenderProgress(p.Progress, 20))
	if p.IsArchived() {
		kv("Archived", p.ArchivedAt.Format(domain.DateLayout))
	}

	b.WriteString("\n" + Header("Stages") + "\n")
	if len(p.Stages) == 0 {
		b.WriteString(Dim("No stages yet.") + "\n")
	} else {
		b.WriteString(FormatStages(p.Stages, now))
		line := fmt.Sprintf("Allocated %s of 100%%", Percent(ledger.TotalWeight(p.Stages)))
		if !ledger.IsFullyAllocated(p.Stages) {
			line += StyleYellow.Render(fmt.Sprintf("  (%s unallocated)", Percent(ledger.RemainingWeight(p.Stages))))
		}
		b.WriteString(Dim(line) + "\n")
	}

	b.WriteString("\n" + Header("Budget") + "\n")
	if len(p.BudgetLines) == 0 {
		b.WriteString(Dim("No budget lines yet.") + "\n")
	} else {
		b.WriteString(FormatBudget(p))
	}
	return b.String()
}

// FormatStages renders the stage table in sequence order.
func FormatStages(stages []domain.Stage, now time.Time) string {
	headers := []string{"#", "STAGE", "WEIGHT", "STATUS", "START", "END", "INVOICE", "EXPECTED", "AMOUNT", "PAYMENT"}
	rows := make([][]string, 0, len(stages))
	for _, s := range ledger.Renumber(stages) {
		payment := Dim("--")
		if s.HasInvoiceData() {
			payment = PaymentPill(s.PaymentStatus)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Number),
			s.Name,
			Percent(s.Weight),
			StageStatusPill(s.DisplayStatus(now)),
			DateCell(s.StartDate),
			DateCell(s.EndDate),
			DateCell(s.InvoiceDate),
			DateCell(s.ExpectedInvoiceDate),
			MoneyCell(s.InvoiceAmount),
			payment,
		})
	}
	return RenderTable(headers, rows, 2, 8)
}

// FormatBudget renders every budget line followed by per-stage totals.
func FormatBudget(p *domain.Project) string {
	var b strings.Builder
	stageNo := make(map[string]int, len(p.Stages))
	for _, s := range ledger.Renumber(p.Stages) {
		stageNo[s.ID] = s.Number
	}

	lines := make([][]string, 0, len(p.BudgetLines))
	for _, l := range p.BudgetLines {
		stage := Dim("--")
		if n, ok := stageNo[l.StageID]; ok {
			stage = fmt.Sprintf("%d", n)
		}
		realized := l.Realized.String()
		if l.Realized > l.Planned {
			realized = StyleRed.Render(realized)
		}
		lines = append(lines, []string{ShortID(l.ID), stage, l.Category, l.Description, l.Planned.String(), realized})
	}
	b.WriteString(RenderTable([]string{"ID", "STAGE", "CATEGORY", "DESCRIPTION", "PLANNED", "REALIZED"}, lines, 4, 5))

	bd := ledger.BreakdownBudget(p.Stages, p.BudgetLines)
	totals := make([][]string, 0, len(bd.Stages)+2)
	for _, row := range bd.Stages {
		totals = append(totals, budgetTotalsRow(fmt.Sprintf("%d. %s", row.Stage.Number, row.Stage.Name), row.Totals))
	}
	if bd.Unassigned.Lines > 0 {
		totals = append(totals, budgetTotalsRow(Dim("Unassigned"), bd.Unassigned))
	}
	totals = append(totals, budgetTotalsRow(Bold("Total"), bd.Project))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"STAGE", "PLANNED", "REALIZED", "REMAINING"}, totals, 1, 2, 3))
	return b.String()
}

func budgetTotalsRow(label string, t ledger.BudgetTotals) []string {
	remaining := t.Remaining().String()
	if t.OverRealized() {
		remaining = StyleRed.Render(remaining)
	}
	return []string{label, t.Planned.String(), t.Realized.String(), remaining}
}
