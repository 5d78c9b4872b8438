package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/repository"
)

type statusService struct {
	db       db.DBTX
	clock    clockFunc
	observer UseCaseObserver
}

// NewStatusService builds the status view. clock supplies "today" when the
// request does not; nil means the wall clock.
func NewStatusService(q db.DBTX, clock func() time.Time, observers ...UseCaseObserver) StatusService {
	return &statusService{
		db:       q,
		clock:    clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (resp *app.StatusResponse, err error) {
	defer observe(ctx, s.observer, "status", map[string]any{"scope": len(req.ProjectScope)})(&err)

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	projects, err := repository.NewProjectStore(s.db).LoadAll(ctx, req.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	scoped := filterProjectsByScope(projects, req.ProjectScope)
	if missing := unmatchedScope(scoped, req.ProjectScope); len(missing) > 0 {
		return nil, &app.StatusError{
			Code:    app.StatusErrInvalidScope,
			Message: "unknown project(s): " + strings.Join(missing, ", "),
		}
	}

	resp = &app.StatusResponse{}
	for _, p := range scoped {
		if !req.IncludeFinished && p.Status.Finished() {
			continue
		}
		view := buildStatusView(*p, now)
		resp.Projects = append(resp.Projects, view)
		resp.Warnings = append(resp.Warnings, statusWarnings(view)...)
	}

	sortStatusViews(resp.Projects)
	resp.Summary = buildStatusSummary(resp.Projects, now)
	return resp, nil
}

func buildStatusView(p domain.Project, now time.Time) app.ProjectStatusView {
	deadline := ledger.AssessDeadline(p, now)

	var endDate *string
	if p.EndDate != nil {
		ds := p.EndDate.Format(domain.DateLayout)
		endDate = &ds
	}

	view := app.ProjectStatusView{
		ProjectID:       p.ID,
		ProjectCode:     p.Code,
		ProjectName:     p.Name,
		Client:          p.Client,
		JobType:         p.JobType,
		Status:          p.Status,
		Deadline:        deadline.State,
		EndDate:         endDate,
		DaysLeft:        deadline.DaysLeft,
		ProgressPct:     ledger.WeightedProgress(p.Stages),
		FullyPlanned:    ledger.IsFullyAllocated(p.Stages),
		RemainingWeight: ledger.RemainingWeight(p.Stages),
		Stages:          ledger.CountStages(p.Stages, now),
		Budget:          ledger.ProjectBudget(p.BudgetLines),
		ContractValue:   p.ContractValue,
		Archived:        p.IsArchived(),
	}
	for _, st := range p.Stages {
		if !st.HasInvoiceData() {
			continue
		}
		amount := domain.MoneyFromPtr(st.InvoiceAmount)
		view.InvoiceBilled += amount
		switch st.EffectivePaymentStatus() {
		case domain.PaymentPaid:
			view.InvoicePaid += amount
		case domain.PaymentOverdue:
			view.InvoiceOverdue += amount
		}
	}
	return view
}

func statusWarnings(v app.ProjectStatusView) []string {
	var out []string
	if v.Stages.Total > 0 && !v.FullyPlanned {
		out = append(out, fmt.Sprintf("%s: stage weights leave %.1f%% unallocated", v.ProjectCode, v.RemainingWeight))
	}
	if v.Budget.OverRealized() {
		out = append(out, fmt.Sprintf("%s: realized spending %s exceeds planned %s",
			v.ProjectCode, v.Budget.Realized, v.Budget.Planned))
	}
	return out
}

func unmatchedScope(matched []*domain.Project, scope []string) []string {
	var missing []string
	for _, ref := range scope {
		found := false
		for _, p := range matched {
			if strings.EqualFold(p.ID, ref) || strings.EqualFold(p.Code, ref) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, ref)
		}
	}
	return missing
}

// sortStatusViews orders by deadline severity, then end date (dated first,
// earliest first), then name.
func sortStatusViews(views []app.ProjectStatusView) {
	sort.Slice(views, func(i, j int) bool {
		pi := domain.DeadlinePriority(views[i].Deadline)
		pj := domain.DeadlinePriority(views[j].Deadline)
		if pi != pj {
			return pi < pj
		}
		if (views[i].EndDate == nil) != (views[j].EndDate == nil) {
			return views[i].EndDate != nil
		}
		if views[i].EndDate != nil && views[j].EndDate != nil && *views[i].EndDate != *views[j].EndDate {
			return *views[i].EndDate < *views[j].EndDate
		}
		return views[i].ProjectName < views[j].ProjectName
	})
}

func buildStatusSummary(views []app.ProjectStatusView, now time.Time) app.StatusSummary {
	sum := app.StatusSummary{GeneratedAt: now, CountsTotal: len(views)}
	for _, v := range views {
		switch v.Deadline {
		case domain.DeadlineOverdue:
			sum.CountsOverdue++
		case domain.DeadlineCritical:
			sum.CountsCritical++
		case domain.DeadlineWarning:
			sum.CountsWarning++
		default:
			sum.CountsSafe++
		}
		sum.ContractTotal += v.ContractValue
		sum.BudgetPlanned += v.Budget.Planned
		sum.BudgetRealized += v.Budget.Realized
	}
	return sum
}
