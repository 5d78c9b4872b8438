package ledger

import (
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) *time.Time {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

func TestAssessDeadline(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	onTime := domain.Stage{ID: "a", Status: domain.StageInProgress, EndDate: day(3)}
	late := domain.Stage{ID: "b", Status: domain.StagePending, EndDate: day(-2)}
	lateToo := domain.Stage{ID: "c", Status: domain.StageInProgress, EndDate: day(-1)}

	tests := []struct {
		name   string
		end    *time.Time
		stages []domain.Stage
		want   domain.DeadlineState
	}{
		{"no stages", day(-10), nil, domain.DeadlineSafe},
		{"all on schedule", day(30), []domain.Stage{onTime}, domain.DeadlineSafe},
		{"overdue stages far deadline", day(30), []domain.Stage{late, lateToo}, domain.DeadlineWarning},
		{"eight days is warning not critical", day(8), []domain.Stage{late}, domain.DeadlineWarning},
		{"five days critical without overdue stages", day(5), []domain.Stage{onTime}, domain.DeadlineCritical},
		{"seven days critical", day(7), []domain.Stage{onTime}, domain.DeadlineCritical},
		{"deadline today critical", day(0), []domain.Stage{onTime}, domain.DeadlineCritical},
		{"critical beats warning", day(5), []domain.Stage{late}, domain.DeadlineCritical},
		{"passed deadline overdue", day(-1), []domain.Stage{onTime}, domain.DeadlineOverdue},
		{"overdue beats everything", day(-1), []domain.Stage{late}, domain.DeadlineOverdue},
		{"no end date with late stage", nil, []domain.Stage{late}, domain.DeadlineWarning},
		{"no end date on schedule", nil, []domain.Stage{onTime}, domain.DeadlineSafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Project{EndDate: tt.end, Stages: tt.stages}
			assert.Equal(t, tt.want, DeadlineStateOf(p, now))
		})
	}
}

func TestAssessDeadline_ReportsDetails(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := domain.Project{
		EndDate: day(30),
		Stages: []domain.Stage{
			{Status: domain.StagePending, EndDate: day(-2)},
			{Status: domain.StagePending, EndDate: day(-1)},
			{Status: domain.StageDone, EndDate: day(-5)},
		},
	}
	r := AssessDeadline(p, now)
	assert.Equal(t, domain.DeadlineWarning, r.State)
	assert.Equal(t, 2, r.OverdueStages)
	require.NotNil(t, r.DaysLeft)
	assert.Equal(t, 30, *r.DaysLeft)
}
