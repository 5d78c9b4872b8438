package ledger

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/google/uuid"
)

// newID is replaced in tests that need deterministic ids.
var newID = func() string { return uuid.New().String() }

// Reducer applies edit intents to a project. It never mutates its input:
// every successful Reduce returns a new, validated project with stages in
// Number order and Progress recomputed.
type Reducer struct {
	Orphans OrphanPolicy
}

func NewReducer(orphans OrphanPolicy) Reducer {
	if orphans == "" {
		orphans = OrphanDetach
	}
	return Reducer{Orphans: orphans}
}

// Reduce applies one intent. On error the returned project is state itself.
func (r Reducer) Reduce(state domain.Project, in Intent) (domain.Project, error) {
	if state.Synthetic {
		return state, invalid(CodeInvalidValue, "project", "generated snapshot data cannot be edited")
	}
	next := state.Clone()
	var err error

	switch in := in.(type) {
	case AddStage:
		next.Stages, err = r.addStage(next.Stages, in.Stage)
	case UpdateStage:
		next.Stages, err = r.updateStage(next.Stages, in)
	case SetStageStatus:
		next.Stages, err = r.setStageStatus(next.Stages, in)
	case SetStageInvoice:
		next.Stages, err = r.setStageInvoice(next.Stages, in)
	case MoveStageUpIntent:
		next.Stages = MoveStageUp(next.Stages, in.StageID)
	case MoveStageDownIntent:
		next.Stages = MoveStageDown(next.Stages, in.StageID)
	case RemoveStageIntent:
		if indexOfStage(next.Stages, in.StageID) >= 0 {
			next.BudgetLines = applyOrphanPolicy(next.BudgetLines, in.StageID, r.Orphans)
		}
		next.Stages = RemoveStage(next.Stages, in.StageID)
	case AddBudgetLine:
		next.BudgetLines, err = r.addBudgetLine(next, in.Line)
	case UpdateBudgetLine:
		next.BudgetLines, err = r.updateBudgetLine(next, in.Line)
	case RemoveBudgetLine:
		next.BudgetLines, err = removeBudgetLine(next.BudgetLines, in.LineID)
	case UpdateProject:
		err = updateProject(&next, in)
	case nil:
		err = invalid(CodeInvalidValue, "intent", "intent is required")
	default:
		err = invalid(CodeInvalidValue, "intent", fmt.Sprintf("unsupported intent %T", in))
	}
	if err != nil {
		return state, err
	}

	next.Stages = Renumber(next.Stages)
	next.Progress = WeightedProgress(next.Stages)
	return next, nil
}

// ReduceAll applies intents in order. It stops at the first error and
// returns the original state with an error naming the failing intent.
func (r Reducer) ReduceAll(state domain.Project, intents ...Intent) (domain.Project, error) {
	cur := state
	for i, in := range intents {
		next, err := r.Reduce(cur, in)
		if err != nil {
			kind := "<nil>"
			if in != nil {
				kind = in.Kind()
			}
			return state, fmt.Errorf("intent %d (%s): %w", i+1, kind, err)
		}
		cur = next
	}
	return cur, nil
}

func (r Reducer) addStage(stages []domain.Stage, s domain.Stage) ([]domain.Stage, error) {
	if s.ID == "" {
		s.ID = newID()
	}
	if indexOfStage(stages, s.ID) >= 0 {
		return nil, invalid(CodeInvalidValue, "id", fmt.Sprintf("stage %s already exists", s.ID))
	}
	s, err := normalizeStage(s)
	if err != nil {
		return nil, err
	}
	if err := checkStageWeight(stages, "", s.Weight); err != nil {
		return nil, err
	}
	return AppendStage(stages, s), nil
}

func (r Reducer) updateStage(stages []domain.Stage, in UpdateStage) ([]domain.Stage, error) {
	i := indexOfStage(stages, in.StageID)
	if i < 0 {
		return nil, unknownStage(in.StageID)
	}
	s := stages[i]
	s.Name = in.Name
	s.Weight = in.Weight
	s.Status = in.Status
	s.StartDate = in.StartDate
	s.EndDate = in.EndDate
	s.Files = append([]string(nil), in.Files...)
	s, err := normalizeStage(s)
	if err != nil {
		return nil, err
	}
	if err := checkStageWeight(stages, s.ID, s.Weight); err != nil {
		return nil, err
	}
	stages[i] = s
	return stages, nil
}

func (r Reducer) setStageStatus(stages []domain.Stage, in SetStageStatus) ([]domain.Stage, error) {
	i := indexOfStage(stages, in.StageID)
	if i < 0 {
		return nil, unknownStage(in.StageID)
	}
	st, err := domain.ParseStageStatus(string(in.Status))
	if err != nil {
		return nil, invalid(CodeInvalidValue, "status", err.Error())
	}
	stages[i].Status = st
	return stages, nil
}

func (r Reducer) setStageInvoice(stages []domain.Stage, in SetStageInvoice) ([]domain.Stage, error) {
	i := indexOfStage(stages, in.StageID)
	if i < 0 {
		return nil, unknownStage(in.StageID)
	}
	s := stages[i]
	s.InvoiceDate = in.InvoiceDate
	s.ExpectedInvoiceDate = in.ExpectedInvoiceDate
	s.InvoiceAmount = in.Amount
	s.PaymentStatus = in.PaymentStatus
	s, err := normalizeStage(s)
	if err != nil {
		return nil, err
	}
	stages[i] = s
	return stages, nil
}

func (r Reducer) addBudgetLine(p domain.Project, b domain.BudgetLine) ([]domain.BudgetLine, error) {
	if b.ID == "" {
		b.ID = newID()
	}
	if indexOfLine(p.BudgetLines, b.ID) >= 0 {
		return nil, invalid(CodeInvalidValue, "id", fmt.Sprintf("budget line %s already exists", b.ID))
	}
	if err := validateBudgetLine(p.Stages, &b); err != nil {
		return nil, err
	}
	return append(p.BudgetLines, b), nil
}

func (r Reducer) updateBudgetLine(p domain.Project, b domain.BudgetLine) ([]domain.BudgetLine, error) {
	i := indexOfLine(p.BudgetLines, b.ID)
	if i < 0 {
		return nil, invalid(CodeUnknownLine, "id", fmt.Sprintf("budget line %q not found", b.ID))
	}
	if err := validateBudgetLine(p.Stages, &b); err != nil {
		return nil, err
	}
	p.BudgetLines[i] = b
	return p.BudgetLines, nil
}

func removeBudgetLine(lines []domain.BudgetLine, id string) ([]domain.BudgetLine, error) {
	i := indexOfLine(lines, id)
	if i < 0 {
		return nil, invalid(CodeUnknownLine, "id", fmt.Sprintf("budget line %q not found", id))
	}
	return append(lines[:i], lines[i+1:]...), nil
}

func updateProject(p *domain.Project, in UpdateProject) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid(CodeRequiredField, "name", "project name is required")
	}
	if in.StartDate.IsZero() {
		return invalid(CodeRequiredField, "startDate", "project start date is required")
	}
	if in.EndDate != nil && domain.DateOnly(*in.EndDate).Before(domain.DateOnly(in.StartDate)) {
		return invalid(CodeDateOrder, "endDate", "project end date is before its start date")
	}
	status, err := domain.ParseProjectStatus(string(in.Status))
	if err != nil {
		return invalid(CodeInvalidValue, "status", err.Error())
	}
	if in.ContractValue < 0 {
		return invalid(CodeInvalidValue, "contractValue", "contract value cannot be negative")
	}
	source, err := domain.ParseTenderSource(string(in.Tender.Source))
	if err != nil {
		return invalid(CodeInvalidValue, "tender.source", err.Error())
	}

	p.Name = name
	p.Client = strings.TrimSpace(in.Client)
	p.JobType = strings.TrimSpace(in.JobType)
	p.ContractNumber = in.ContractNumber
	p.ContractValue = in.ContractValue
	p.Location = in.Location
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Status = status
	p.Tender = in.Tender
	p.Tender.Source = source
	return nil
}

// normalizeStage validates field-level rules and fills defaults.
func normalizeStage(s domain.Stage) (domain.Stage, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return s, invalid(CodeRequiredField, "name", "stage name is required")
	}
	if s.Weight < 0 || s.Weight > MaxTotalWeight {
		return s, invalid(CodeInvalidValue, "weight", fmt.Sprintf("stage weight %.1f must be between 0 and 100", s.Weight))
	}
	st, err := domain.ParseStageStatus(string(s.Status))
	if err != nil {
		return s, invalid(CodeInvalidValue, "status", err.Error())
	}
	s.Status = st
	ps, err := domain.ParsePaymentStatus(string(s.PaymentStatus))
	if err != nil {
		return s, invalid(CodeInvalidValue, "paymentStatus", err.Error())
	}
	s.PaymentStatus = ps
	if s.StartDate != nil && s.EndDate != nil && domain.DateOnly(*s.EndDate).Before(domain.DateOnly(*s.StartDate)) {
		return s, invalid(CodeDateOrder, "endDate", fmt.Sprintf("stage %q ends before it starts", s.Name))
	}
	if s.InvoiceAmount != nil && *s.InvoiceAmount < 0 {
		return s, invalid(CodeInvalidValue, "invoiceAmount", "invoice amount cannot be negative")
	}
	return s, nil
}

func checkStageWeight(stages []domain.Stage, replacingID string, w float64) error {
	wc := CheckWeight(stages, replacingID, w)
	if wc.Allowed {
		return nil
	}
	return invalid(CodeWeightExceeded, "weight",
		fmt.Sprintf("total weight would be %.1f%%; only %.1f%% remaining", round1(wc.Total), wc.Available))
}

func validateBudgetLine(stages []domain.Stage, b *domain.BudgetLine) error {
	b.Category = strings.TrimSpace(b.Category)
	b.Description = strings.TrimSpace(b.Description)
	if b.Description == "" {
		return invalid(CodeRequiredField, "description", "budget line description is required")
	}
	if b.Planned < 0 {
		return invalid(CodeInvalidValue, "planned", "planned amount cannot be negative")
	}
	if b.Realized < 0 {
		return invalid(CodeInvalidValue, "realized", "realized amount cannot be negative")
	}
	if b.StageID != "" && indexOfStage(stages, b.StageID) < 0 {
		return unknownStage(b.StageID)
	}
	return nil
}

func unknownStage(id string) *ValidationError {
	return invalid(CodeUnknownStage, "stageId", fmt.Sprintf("stage %q not found", id))
}

func indexOfLine(lines []domain.BudgetLine, id string) int {
	for i, b := range lines {
		if b.ID == id {
			return i
		}
	}
	return -1
}
