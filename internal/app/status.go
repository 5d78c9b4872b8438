package app

import (
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
)

type StatusRequest struct {
	Now             *time.Time
	ProjectScope    []string
	IncludeArchived bool
	// IncludeFinished keeps selesai and serah_terima projects in the view.
	IncludeFinished bool
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{IncludeFinished: true}
}

// ProjectStatusView is the per-project health line of the status view.
type ProjectStatusView struct {
	ProjectID       string
	ProjectCode     string
	ProjectName     string
	Client          string
	JobType         string
	Status          domain.ProjectStatus
	Deadline        domain.DeadlineState
	EndDate         *string
	DaysLeft        *int
	ProgressPct     float64
	FullyPlanned    bool
	RemainingWeight float64
	Stages          ledger.StageCounts
	Budget          ledger.BudgetTotals
	ContractValue   domain.Money
	InvoiceBilled   domain.Money
	InvoicePaid     domain.Money
	InvoiceOverdue  domain.Money
	Archived        bool
}

type StatusSummary struct {
	GeneratedAt    time.Time
	CountsTotal    int
	CountsSafe     int
	CountsWarning  int
	CountsCritical int
	CountsOverdue  int
	ContractTotal  domain.Money
	BudgetPlanned  domain.Money
	BudgetRealized domain.Money
}

type StatusResponse struct {
	Summary  StatusSummary
	Projects []ProjectStatusView
	Warnings []string
}

type StatusErrorCode string

const (
	StatusErrInvalidScope StatusErrorCode = "INVALID_SCOPE"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
