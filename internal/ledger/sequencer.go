package ledger

import (
	"sort"

	"github.com/alexanderramin/proyek/internal/domain"
)

// Renumber returns a copy of stages ordered by their current Number and
// renumbered 1..N. Ties keep their slice order.
func Renumber(stages []domain.Stage) []domain.Stage {
	out := make([]domain.Stage, len(stages))
	copy(out, stages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	for i := range out {
		out[i].Number = i + 1
	}
	return out
}

// AppendStage adds s at the end of the sequence.
func AppendStage(stages []domain.Stage, s domain.Stage) []domain.Stage {
	out := Renumber(stages)
	s.Number = len(out) + 1
	return append(out, s)
}

// MoveStageUp swaps the stage with its predecessor. The first stage and
// unknown ids are left in place.
func MoveStageUp(stages []domain.Stage, id string) []domain.Stage {
	out := Renumber(stages)
	i := indexOfStage(out, id)
	if i <= 0 {
		return out
	}
	return swapStages(out, i, i-1)
}

// MoveStageDown swaps the stage with its successor. The last stage and
// unknown ids are left in place.
func MoveStageDown(stages []domain.Stage, id string) []domain.Stage {
	out := Renumber(stages)
	i := indexOfStage(out, id)
	if i < 0 || i >= len(out)-1 {
		return out
	}
	return swapStages(out, i, i+1)
}

// RemoveStage deletes the stage and closes the gap in numbering.
func RemoveStage(stages []domain.Stage, id string) []domain.Stage {
	out := Renumber(stages)
	i := indexOfStage(out, id)
	if i < 0 {
		return out
	}
	out = append(out[:i], out[i+1:]...)
	for j := range out {
		out[j].Number = j + 1
	}
	return out
}

// IsDense reports whether Numbers form exactly 1..N in slice order.
func IsDense(stages []domain.Stage) bool {
	for i, s := range stages {
		if s.Number != i+1 {
			return false
		}
	}
	return true
}

func swapStages(out []domain.Stage, i, j int) []domain.Stage {
	out[i], out[j] = out[j], out[i]
	out[i].Number = i + 1
	out[j].Number = j + 1
	return out
}

func indexOfStage(stages []domain.Stage, id string) int {
	for i, s := range stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}
