package contract

import (
	"time"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/alexanderramin/proyek/internal/ledger"
)

// ProjectDTO is the JSON shape of a project with its derived figures.
type ProjectDTO struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Client          string          `json:"client"`
	JobType         string          `json:"job_type"`
	ContractNumber  string          `json:"contract_number"`
	ContractValue   int64           `json:"contract_value"`
	Location        string          `json:"location"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date,omitempty"`
	Status          string          `json:"status"`
	Progress        float64         `json:"progress"`
	RemainingWeight float64         `json:"remaining_weight"`
	FullyPlanned    bool            `json:"fully_planned"`
	Deadline        string          `json:"deadline"`
	Tender          TenderDTO       `json:"tender"`
	Stages          []StageDTO      `json:"stages"`
	BudgetLines     []BudgetLineDTO `json:"budget_lines"`
	Budget          BudgetDTO       `json:"budget"`
	Archived        bool            `json:"archived"`
	Synthetic       bool            `json:"synthetic,omitempty"`
}

type TenderDTO struct {
	Source string `json:"source"`
	Number string `json:"number,omitempty"`
	Agency string `json:"agency,omitempty"`
}

// StageDTO carries the stored status and the display status, which reads
// "overdue" for unfinished stages past their end date.
type StageDTO struct {
	ID                  string   `json:"id"`
	Number              int      `json:"number"`
	Name                string   `json:"name"`
	Weight              float64  `json:"weight"`
	Status              string   `json:"status"`
	DisplayStatus       string   `json:"display_status"`
	StartDate           string   `json:"start_date,omitempty"`
	EndDate             string   `json:"end_date,omitempty"`
	InvoiceDate         string   `json:"invoice_date,omitempty"`
	ExpectedInvoiceDate string   `json:"expected_invoice_date,omitempty"`
	InvoiceAmount       *int64   `json:"invoice_amount,omitempty"`
	PaymentStatus       string   `json:"payment_status"`
	Files               []string `json:"files,omitempty"`
	Planned             int64    `json:"budget_planned"`
	Realized            int64    `json:"budget_realized"`
}

type BudgetLineDTO struct {
	ID          string   `json:"id"`
	StageID     string   `json:"stage_id,omitempty"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Planned     int64    `json:"planned"`
	Realized    int64    `json:"realized"`
	Files       []string `json:"files,omitempty"`
}

type BudgetDTO struct {
	Planned            int64 `json:"planned"`
	Realized           int64 `json:"realized"`
	UnassignedPlanned  int64 `json:"unassigned_planned"`
	UnassignedRealized int64 `json:"unassigned_realized"`
}

func NewProjectDTO(p *domain.Project, now time.Time) ProjectDTO {
	breakdown := ledger.BreakdownBudget(p.Stages, p.BudgetLines)
	out := ProjectDTO{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Client:          p.Client,
		JobType:         p.JobType,
		ContractNumber:  p.ContractNumber,
		ContractValue:   int64(p.ContractValue),
		Location:        p.Location,
		StartDate:       p.StartDate.Format(domain.DateLayout),
		EndDate:         domain.FormatDate(p.EndDate),
		Status:          string(p.Status),
		Progress:        ledger.WeightedProgress(p.Stages),
		RemainingWeight: ledger.RemainingWeight(p.Stages),
		FullyPlanned:    ledger.IsFullyAllocated(p.Stages),
		Deadline:        string(ledger.DeadlineStateOf(*p, now)),
		Tender: TenderDTO{
			Source: string(p.Tender.Source),
			Number: p.Tender.Number,
			Agency: p.Tender.Agency,
		},
		Stages:      make([]StageDTO, 0, len(p.Stages)),
		BudgetLines: make([]BudgetLineDTO, 0, len(p.BudgetLines)),
		Budget: BudgetDTO{
			Planned:            int64(breakdown.Project.Planned),
			Realized:           int64(breakdown.Project.Realized),
			UnassignedPlanned:  int64(breakdown.Unassigned.Planned),
			UnassignedRealized: int64(breakdown.Unassigned.Realized),
		},
		Archived:  p.IsArchived(),
		Synthetic: p.Synthetic,
	}
	for _, row := range breakdown.Stages {
		s := row.Stage
		dto := StageDTO{
			ID:                  s.ID,
			Number:              s.Number,
			Name:                s.Name,
			Weight:              s.Weight,
			Status:              string(s.Status),
			DisplayStatus:       string(s.DisplayStatus(now)),
			StartDate:           domain.FormatDate(s.StartDate),
			EndDate:             domain.FormatDate(s.EndDate),
			InvoiceDate:         domain.FormatDate(s.InvoiceDate),
			ExpectedInvoiceDate: domain.FormatDate(s.ExpectedInvoiceDate),
			PaymentStatus:       string(s.EffectivePaymentStatus()),
			Files:               s.Files,
			Planned:             int64(row.Totals.Planned),
			Realized:            int64(row.Totals.Realized),
		}
		if s.InvoiceAmount != nil {
			v := int64(*s.InvoiceAmount)
			dto.InvoiceAmount = &v
		}
		out.Stages = append(out.Stages, dto)
	}
	for _, b := range p.BudgetLines {
		out.BudgetLines = append(out.BudgetLines, BudgetLineDTO{
			ID:          b.ID,
			StageID:     b.StageID,
			Category:    b.Category,
			Description: b.Description,
			Planned:     int64(b.Planned),
			Realized:    int64(b.Realized),
			Files:       b.Files,
		})
	}
	return out
}

// ReportDTO is the JSON shape of an invoice report.
type ReportDTO struct {
	Kind   string              `json:"kind"`
	Year   int                 `json:"year,omitempty"`
	Rows   []invoice.ExportRow `json:"rows"`
	Totals ReportTotalsDTO     `json:"totals"`
	Months []MonthDTO          `json:"months,omitempty"`
}

type ReportTotalsDTO struct {
	Billed  int64 `json:"billed"`
	Paid    int64 `json:"lunas"`
	Pending int64 `json:"pending"`
	Overdue int64 `json:"overdue"`
}

type MonthDTO struct {
	Month   int   `json:"month"`
	Paid    int64 `json:"lunas"`
	Pending int64 `json:"pending"`
	Overdue int64 `json:"overdue"`
	Total   int64 `json:"total"`
}

func NewReportDTO(resp *app.ReportResponse) ReportDTO {
	out := ReportDTO{
		Kind: string(resp.Kind),
		Year: resp.Year,
		Rows: invoice.ExportRows(resp.Rows),
		Totals: ReportTotalsDTO{
			Billed:  int64(resp.Totals.Billed),
			Paid:    int64(resp.Totals.Paid),
			Pending: int64(resp.Totals.Pending),
			Overdue: int64(resp.Totals.Overdue),
		},
	}
	if resp.Months != nil {
		for _, m := range resp.Months {
			out.Months = append(out.Months, MonthDTO{
				Month:   int(m.Month),
				Paid:    int64(m.Paid),
				Pending: int64(m.Pending),
				Overdue: int64(m.Overdue),
				Total:   int64(m.Total()),
			})
		}
	}
	return out
}

// StatusDTO is the JSON shape of the cross-project status view.
type StatusDTO struct {
	GeneratedAt string          `json:"generated_at"`
	Counts      map[string]int  `json:"counts"`
	Projects    []StatusViewDTO `json:"projects"`
	Warnings    []string        `json:"warnings,omitempty"`
}

type StatusViewDTO struct {
	ProjectID       string  `json:"project_id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Status          string  `json:"status"`
	Deadline        string  `json:"deadline"`
	EndDate         string  `json:"end_date,omitempty"`
	DaysLeft        *int    `json:"days_left,omitempty"`
	Progress        float64 `json:"progress"`
	FullyPlanned    bool    `json:"fully_planned"`
	RemainingWeight float64 `json:"remaining_weight"`
	OverdueStages   int     `json:"overdue_stages"`
	BudgetPlanned   int64   `json:"budget_planned"`
	BudgetRealized  int64   `json:"budget_realized"`
	InvoiceBilled   int64   `json:"invoice_billed"`
	InvoicePaid     int64   `json:"invoice_paid"`
}

func NewStatusDTO(resp *app.StatusResponse) StatusDTO {
	out := StatusDTO{
		GeneratedAt: resp.Summary.GeneratedAt.Format(time.RFC3339),
		Counts: map[string]int{
			"total":                         resp.Summary.CountsTotal,
			string(domain.DeadlineSafe):     resp.Summary.CountsSafe,
			string(domain.DeadlineWarning):  resp.Summary.CountsWarning,
			string(domain.DeadlineCritical): resp.Summary.CountsCritical,
			string(domain.DeadlineOverdue):  resp.Summary.CountsOverdue,
		},
		Projects: make([]StatusViewDTO, 0, len(resp.Projects)),
		Warnings: resp.Warnings,
	}
	for _, v := range resp.Projects {
		dto := StatusViewDTO{
			ProjectID:       v.ProjectID,
			Code:            v.ProjectCode,
			Name:            v.ProjectName,
			Status:          string(v.Status),
			Deadline:        string(v.Deadline),
			DaysLeft:        v.DaysLeft,
			Progress:        v.ProgressPct,
			FullyPlanned:    v.FullyPlanned,
			RemainingWeight: v.RemainingWeight,
			OverdueStages:   v.Stages.Overdue,
			BudgetPlanned:   int64(v.Budget.Planned),
			BudgetRealized:  int64(v.Budget.Realized),
			InvoiceBilled:   int64(v.InvoiceBilled),
			InvoicePaid:     int64(v.InvoicePaid),
		}
		if v.EndDate != nil {
			dto.EndDate = *v.EndDate
		}
		out.Projects = append(out.Projects, dto)
	}
	return out
}
