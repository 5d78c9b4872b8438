package invoice

import "github.com/alexanderramin/proyek/internal/domain"

// TrackingFilter narrows the tracking view. Zero fields do not filter.
type TrackingFilter struct {
	Year    int
	Month   int
	JobType string
	Status  domain.PaymentStatus
	Sort    SortMode
}

// Tracking lists every stage invoice dated by its realized invoice date,
// falling back to the expected date.
func Tracking(projects []domain.Project, f TrackingFilter) []Row {
	rows := filterRows(collect(projects, realizedFirst), criteria{
		year:    f.Year,
		month:   f.Month,
		jobType: f.JobType,
		status:  f.Status,
	})
	sortRows(rows, f.Sort)
	return rows
}
