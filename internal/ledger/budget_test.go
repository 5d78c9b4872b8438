package ledger

import (
	"testing"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetFixture() ([]domain.Stage, []domain.BudgetLine) {
	stages := []domain.Stage{
		{ID: "s1", Number: 1, Name: "Pondasi"},
		{ID: "s2", Number: 2, Name: "Struktur"},
	}
	lines := []domain.BudgetLine{
		{ID: "b1", StageID: "s1", Description: "Semen", Planned: 1000, Realized: 1200},
		{ID: "b2", StageID: "s1", Description: "Besi", Planned: 500, Realized: 100},
		{ID: "b3", StageID: "s2", Description: "Bekisting", Planned: 700},
		{ID: "b4", StageID: "gone", Description: "Sewa alat", Planned: 300, Realized: 300},
		{ID: "b5", Description: "Umum", Planned: 50},
	}
	return stages, lines
}

func TestStageBudget(t *testing.T) {
	_, lines := budgetFixture()
	s1 := StageBudget(lines, "s1")
	assert.Equal(t, domain.Money(1500), s1.Planned)
	assert.Equal(t, domain.Money(1300), s1.Realized)
	assert.Equal(t, 2, s1.Lines)
	assert.Equal(t, domain.Money(200), s1.Remaining())
	assert.False(t, s1.OverRealized())

	assert.Equal(t, BudgetTotals{}, StageBudget(lines, "nope"))
}

func TestProjectBudget_CountsEveryLine(t *testing.T) {
	_, lines := budgetFixture()
	total := ProjectBudget(lines)
	assert.Equal(t, domain.Money(2550), total.Planned)
	assert.Equal(t, domain.Money(1600), total.Realized)
	assert.Equal(t, 5, total.Lines)
}

func TestBreakdownBudget_DanglingLinesAreUnassigned(t *testing.T) {
	stages, lines := budgetFixture()
	bd := BreakdownBudget(stages, lines)

	require.Len(t, bd.Stages, 2)
	assert.Equal(t, "s1", bd.Stages[0].Stage.ID)
	assert.Equal(t, domain.Money(1500), bd.Stages[0].Totals.Planned)
	assert.Equal(t, domain.Money(700), bd.Stages[1].Totals.Planned)
	assert.Equal(t, domain.Money(350), bd.Unassigned.Planned)
	assert.Equal(t, 2, bd.Unassigned.Lines)
	assert.Equal(t, ProjectBudget(lines), bd.Project)
}

func TestBudgetTotals_OverRealizedIsAllowed(t *testing.T) {
	bt := BudgetTotals{Planned: 100, Realized: 150}
	assert.True(t, bt.OverRealized())
	assert.Equal(t, domain.Money(-50), bt.Remaining())
}

func TestParseOrphanPolicy(t *testing.T) {
	p, err := ParseOrphanPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OrphanDetach, p)

	p, err = ParseOrphanPolicy("cascade")
	require.NoError(t, err)
	assert.Equal(t, OrphanCascade, p)

	_, err = ParseOrphanPolicy("ignore")
	assert.Error(t, err)
}
