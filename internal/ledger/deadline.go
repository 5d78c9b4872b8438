package ledger

import (
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
)

// criticalWindowDays is the number of days before the project end date during
// which the project is critical regardless of stage state.
const criticalWindowDays = 7

// DeadlineReport is the schedule health of a project as of a given day.
type DeadlineReport struct {
	State         domain.DeadlineState
	DaysLeft      *int
	OverdueStages int
}

// AssessDeadline classifies the project. Priority is overdue > critical >
// warning > safe. A project without stages is always safe.
func AssessDeadline(p domain.Project, now time.Time) DeadlineReport {
	r := DeadlineReport{State: domain.DeadlineSafe}
	if p.EndDate != nil {
		d := domain.DaysUntil(*p.EndDate, now)
		r.DaysLeft = &d
	}
	if len(p.Stages) == 0 {
		return r
	}
	r.OverdueStages = len(OverdueStages(p.Stages, now))

	switch {
	case r.DaysLeft != nil && *r.DaysLeft < 0:
		r.State = domain.DeadlineOverdue
	case r.DaysLeft != nil && *r.DaysLeft <= criticalWindowDays:
		r.State = domain.DeadlineCritical
	case r.OverdueStages > 0:
		r.State = domain.DeadlineWarning
	}
	return r
}

// DeadlineStateOf is AssessDeadline reduced to the state.
func DeadlineStateOf(p domain.Project, now time.Time) domain.DeadlineState {
	return AssessDeadline(p, now).State
}
