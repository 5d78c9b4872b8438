package ledger

import (
	"math"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
)

// WeightedProgress is the sum of weights of done stages, clamped to [0, 100].
func WeightedProgress(stages []domain.Stage) float64 {
	var done float64
	for _, s := range stages {
		if s.Status == domain.StageDone {
			done += s.Weight
		}
	}
	return math.Max(0, math.Min(MaxTotalWeight, done))
}

// OverdueStages returns the stages that are unfinished past their end date.
func OverdueStages(stages []domain.Stage, now time.Time) []domain.Stage {
	var out []domain.Stage
	for _, s := range stages {
		if s.IsOverdue(now) {
			out = append(out, s)
		}
	}
	return out
}

// StageCounts tallies stages by display status.
type StageCounts struct {
	Total      int
	Pending    int
	InProgress int
	Done       int
	Overdue    int
}

func CountStages(stages []domain.Stage, now time.Time) StageCounts {
	c := StageCounts{Total: len(stages)}
	for _, s := range stages {
		switch s.DisplayStatus(now) {
		case domain.StageOverdue:
			c.Overdue++
		case domain.StageDone:
			c.Done++
		case domain.StageInProgress:
			c.InProgress++
		default:
			c.Pending++
		}
	}
	return c
}
