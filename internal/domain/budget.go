package domain

// BudgetLine is a planned-versus-realized cost entry (anggaran) attached to a
// stage. An empty StageID means the line is not assigned to any stage.
type BudgetLine struct {
	ID          string
	StageID     string
	Category    string
	Description string
	Planned     Money
	Realized    Money
	Files       []string
}

// Unassigned reports whether the line has no stage.
func (b BudgetLine) Unassigned() bool {
	return b.StageID == ""
}

func (b BudgetLine) clone() BudgetLine {
	if b.Files != nil {
		b.Files = append([]string(nil), b.Files...)
	}
	return b
}
