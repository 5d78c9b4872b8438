package ledger

import (
	"fmt"

	"github.com/alexanderramin/proyek/internal/domain"
)

// BudgetTotals sums planned and realized amounts of a set of budget lines.
type BudgetTotals struct {
	Planned  domain.Money
	Realized domain.Money
	Lines    int
}

// Remaining is Planned minus Realized; negative when over budget.
func (t BudgetTotals) Remaining() domain.Money {
	return t.Planned - t.Realized
}

// OverRealized is informational only. Realization above plan is allowed.
func (t BudgetTotals) OverRealized() bool {
	return t.Realized > t.Planned
}

func (t *BudgetTotals) add(b domain.BudgetLine) {
	t.Planned += b.Planned
	t.Realized += b.Realized
	t.Lines++
}

// StageBudget sums the lines attached to stageID.
func StageBudget(lines []domain.BudgetLine, stageID string) BudgetTotals {
	var t BudgetTotals
	for _, b := range lines {
		if b.StageID == stageID {
			t.add(b)
		}
	}
	return t
}

// ProjectBudget sums every line regardless of stage.
func ProjectBudget(lines []domain.BudgetLine) BudgetTotals {
	var t BudgetTotals
	for _, b := range lines {
		t.add(b)
	}
	return t
}

type StageBudgetRow struct {
	Stage  domain.Stage
	Totals BudgetTotals
}

// BudgetBreakdown groups budget lines by stage. Lines with no stage or a
// stage id that no longer exists land in Unassigned.
type BudgetBreakdown struct {
	Stages     []StageBudgetRow
	Unassigned BudgetTotals
	Project    BudgetTotals
}

func BreakdownBudget(stages []domain.Stage, lines []domain.BudgetLine) BudgetBreakdown {
	ordered := Renumber(stages)
	idx := make(map[string]int, len(ordered))
	bd := BudgetBreakdown{Stages: make([]StageBudgetRow, len(ordered))}
	for i, s := range ordered {
		idx[s.ID] = i
		bd.Stages[i].Stage = s
	}
	for _, b := range lines {
		bd.Project.add(b)
		if i, ok := idx[b.StageID]; ok {
			bd.Stages[i].Totals.add(b)
			continue
		}
		bd.Unassigned.add(b)
	}
	return bd
}

// OrphanPolicy decides what happens to a stage's budget lines when the
// stage is removed.
type OrphanPolicy string

const (
	// OrphanDetach clears StageID and keeps the line in project totals.
	OrphanDetach OrphanPolicy = "detach"
	// OrphanCascade deletes the lines together with the stage.
	OrphanCascade OrphanPolicy = "cascade"
)

func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch OrphanPolicy(s) {
	case OrphanDetach, OrphanCascade:
		return OrphanPolicy(s), nil
	case "":
		return OrphanDetach, nil
	}
	return "", fmt.Errorf("invalid orphan policy %q (detach|cascade)", s)
}

func applyOrphanPolicy(lines []domain.BudgetLine, stageID string, policy OrphanPolicy) []domain.BudgetLine {
	out := make([]domain.BudgetLine, 0, len(lines))
	for _, b := range lines {
		if b.StageID != stageID {
			out = append(out, b)
			continue
		}
		if policy == OrphanCascade {
			continue
		}
		b.StageID = ""
		out = append(out, b)
	}
	return out
}
