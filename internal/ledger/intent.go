package ledger

import (
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
)

// Intent is a typed edit request applied to a project by Reducer.Reduce.
type Intent interface {
	// Kind is the stable wire name of the intent.
	Kind() string
}

type AddStage struct {
	Stage domain.Stage
}

// UpdateStage replaces the editable planning fields of a stage. Number and
// invoice fields are not touched.
type UpdateStage struct {
	StageID   string
	Name      string
	Weight    float64
	Status    domain.StageStatus
	StartDate *time.Time
	EndDate   *time.Time
	Files     []string
}

type SetStageStatus struct {
	StageID string
	Status  domain.StageStatus
}

type SetStageInvoice struct {
	StageID             string
	InvoiceDate         *time.Time
	ExpectedInvoiceDate *time.Time
	Amount              *domain.Money
	PaymentStatus       domain.PaymentStatus
}

type MoveStageUpIntent struct {
	StageID string
}

type MoveStageDownIntent struct {
	StageID string
}

type RemoveStageIntent struct {
	StageID string
}

type AddBudgetLine struct {
	Line domain.BudgetLine
}

// UpdateBudgetLine replaces the line with the same ID.
type UpdateBudgetLine struct {
	Line domain.BudgetLine
}

type RemoveBudgetLine struct {
	LineID string
}

// UpdateProject replaces the project header fields. Stages, budget lines,
// archive state and timestamps are not touched.
type UpdateProject struct {
	Name           string
	Client         string
	JobType        string
	ContractNumber string
	ContractValue  domain.Money
	Location       string
	StartDate      time.Time
	EndDate        *time.Time
	Status         domain.ProjectStatus
	Tender         domain.Tender
}

func (AddStage) Kind() string            { return "add_stage" }
func (UpdateStage) Kind() string         { return "update_stage" }
func (SetStageStatus) Kind() string      { return "set_stage_status" }
func (SetStageInvoice) Kind() string     { return "set_stage_invoice" }
func (MoveStageUpIntent) Kind() string   { return "move_stage_up" }
func (MoveStageDownIntent) Kind() string { return "move_stage_down" }
func (RemoveStageIntent) Kind() string   { return "remove_stage" }
func (AddBudgetLine) Kind() string       { return "add_budget_line" }
func (UpdateBudgetLine) Kind() string    { return "update_budget_line" }
func (RemoveBudgetLine) Kind() string    { return "remove_budget_line" }
func (UpdateProject) Kind() string       { return "update_project" }
