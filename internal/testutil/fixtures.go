package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Date builds a UTC calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date returning a pointer.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}

// MoneyPtr returns a pointer to v rupiah.
func MoneyPtr(v int64) *domain.Money {
	m := domain.Money(v)
	return &m
}

// Project options
type ProjectOption func(*domain.Project)

func WithCode(code string) ProjectOption {
	return func(p *domain.Project) {
		p.Code = code
	}
}

func WithEndDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.EndDate = &d
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func WithJobType(j string) ProjectOption {
	return func(p *domain.Project) {
		p.JobType = j
	}
}

func WithContractValue(v int64) ProjectOption {
	return func(p *domain.Project) {
		p.ContractValue = domain.Money(v)
	}
}

// WithStages replaces the stage list and numbers it 1..N in the given order.
func WithStages(stages ...domain.Stage) ProjectOption {
	return func(p *domain.Project) {
		p.Stages = make([]domain.Stage, len(stages))
		for i, s := range stages {
			s.Number = i + 1
			p.Stages[i] = s
		}
	}
}

func WithBudgetLines(lines ...domain.BudgetLine) ProjectOption {
	return func(p *domain.Project) {
		p.BudgetLines = append([]domain.BudgetLine(nil), lines...)
	}
}

func defaultCode(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testCodeCounter.Add(1) % 10000
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:            uuid.New().String(),
		Code:          defaultCode(name),
		Name:          name,
		Client:        "Dinas PUPR",
		JobType:       "Jalan",
		ContractValue: 500_000_000,
		StartDate:     domain.DateOnly(now.AddDate(0, -1, 0)),
		Status:        domain.ProjectRunning,
		Tender:        domain.Tender{Source: domain.SourceNonTender},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage options
type StageOption func(*domain.Stage)

func WithStageStatus(s domain.StageStatus) StageOption {
	return func(st *domain.Stage) {
		st.Status = s
	}
}

func WithStageEnd(d time.Time) StageOption {
	return func(st *domain.Stage) {
		st.EndDate = &d
	}
}

func WithStageStart(d time.Time) StageOption {
	return func(st *domain.Stage) {
		st.StartDate = &d
	}
}

// WithInvoice sets a realized invoice.
func WithInvoice(d time.Time, amount int64, status domain.PaymentStatus) StageOption {
	return func(st *domain.Stage) {
		st.InvoiceDate = &d
		st.InvoiceAmount = MoneyPtr(amount)
		st.PaymentStatus = status
	}
}

// WithExpectedInvoice sets a projected invoice.
func WithExpectedInvoice(d time.Time, amount int64) StageOption {
	return func(st *domain.Stage) {
		st.ExpectedInvoiceDate = &d
		st.InvoiceAmount = MoneyPtr(amount)
	}
}

func WithStageFiles(files ...string) StageOption {
	return func(st *domain.Stage) {
		st.Files = files
	}
}

func NewTestStage(name string, weight float64, opts ...StageOption) domain.Stage {
	s := domain.Stage{
		ID:            uuid.New().String(),
		Name:          name,
		Weight:        weight,
		Status:        domain.StagePending,
		PaymentStatus: domain.PaymentPending,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// BudgetLine options
type BudgetLineOption func(*domain.BudgetLine)

func ForStage(stageID string) BudgetLineOption {
	return func(b *domain.BudgetLine) {
		b.StageID = stageID
	}
}

func WithRealized(v int64) BudgetLineOption {
	return func(b *domain.BudgetLine) {
		b.Realized = domain.Money(v)
	}
}

func WithCategory(c string) BudgetLineOption {
	return func(b *domain.BudgetLine) {
		b.Category = c
	}
}

func NewTestBudgetLine(description string, planned int64, opts ...BudgetLineOption) domain.BudgetLine {
	b := domain.BudgetLine{
		ID:          uuid.New().String(),
		Category:    "Material",
		Description: description,
		Planned:     domain.Money(planned),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
