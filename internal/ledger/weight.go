package ledger

import (
	"math"

	"github.com/alexanderramin/proyek/internal/domain"
)

const (
	// MaxTotalWeight is the ceiling on the sum of stage weights.
	MaxTotalWeight = 100.0

	// weightEpsilon is how far a sum may sit from 100 and still count as
	// fully allocated.
	weightEpsilon = 0.01

	// floatTolerance absorbs float drift such as 33.3+33.3+33.4 when checking
	// the ceiling.
	floatTolerance = 1e-9
)

// WeightCheck is the outcome of checking a candidate stage weight.
type WeightCheck struct {
	Allowed bool
	// Total is the aggregate weight including the candidate.
	Total float64
	// Available is the headroom before the candidate, rounded to one decimal.
	Available float64
}

// CheckWeight reports whether setting a stage to candidate keeps the total
// weight within MaxTotalWeight. replacingID names the stage being edited and
// is excluded from the sum; pass "" when adding.
func CheckWeight(stages []domain.Stage, replacingID string, candidate float64) WeightCheck {
	var others float64
	for _, s := range stages {
		if replacingID != "" && s.ID == replacingID {
			continue
		}
		others += s.Weight
	}
	total := others + candidate
	return WeightCheck{
		Allowed:   candidate >= 0 && candidate <= MaxTotalWeight && WithinCeiling(total),
		Total:     total,
		Available: round1(MaxTotalWeight - others),
	}
}

// WithinCeiling reports whether a weight sum does not exceed MaxTotalWeight.
func WithinCeiling(total float64) bool {
	return total <= MaxTotalWeight+floatTolerance
}

// TotalWeight sums all stage weights.
func TotalWeight(stages []domain.Stage) float64 {
	var sum float64
	for _, s := range stages {
		sum += s.Weight
	}
	return sum
}

// RemainingWeight is the unallocated weight, rounded to one decimal.
func RemainingWeight(stages []domain.Stage) float64 {
	return round1(MaxTotalWeight - TotalWeight(stages))
}

// IsFullyAllocated reports whether the weights sum to exactly 100.
func IsFullyAllocated(stages []domain.Stage) bool {
	return math.Abs(TotalWeight(stages)-MaxTotalWeight) <= weightEpsilon
}

func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
