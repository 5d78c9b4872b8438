package domain

import (
	"fmt"
	"regexp"
	"time"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Tender holds the procurement metadata a project was won under.
type Tender struct {
	Source TenderSource
	Number string
	Agency string
}

// Project is a construction job (pekerjaan) with its ordered stages and
// budget lines. Progress is a cached value recomputed from Stages.
type Project struct {
	ID             string
	Code           string
	Name           string
	Client         string
	JobType        string
	ContractNumber string
	ContractValue  Money
	Location       string
	StartDate      time.Time
	EndDate        *time.Time
	Status         ProjectStatus
	Progress       float64
	Tender         Tender
	Stages         []Stage
	BudgetLines    []BudgetLine
	ArchivedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Synthetic marks generated illustrative data that must never be persisted.
	Synthetic bool
}

// ValidateCode checks that Code is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. JLN01, GDG2024).
func (p *Project) ValidateCode() error {
	if p.Code == "" {
		return fmt.Errorf("project code is required (use --code flag)")
	}
	if !codePattern.MatchString(p.Code) {
		return fmt.Errorf("project code %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. JLN01)", p.Code)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Code; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.Code != "" {
		return p.Code
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// IsArchived reports whether the project has been moved to the archive.
func (p *Project) IsArchived() bool {
	return p.ArchivedAt != nil
}

// StageByID returns the stage with the given id.
func (p *Project) StageByID(id string) (Stage, bool) {
	for _, s := range p.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// StageByNumber returns the stage at the given 1-based position.
func (p *Project) StageByNumber(n int) (Stage, bool) {
	for _, s := range p.Stages {
		if s.Number == n {
			return s, true
		}
	}
	return Stage{}, false
}

// Clone returns a deep copy whose slices can be modified independently.
func (p Project) Clone() Project {
	out := p
	if p.Stages != nil {
		out.Stages = make([]Stage, len(p.Stages))
		for i, s := range p.Stages {
			out.Stages[i] = s.clone()
		}
	}
	if p.BudgetLines != nil {
		out.BudgetLines = make([]BudgetLine, len(p.BudgetLines))
		for i, b := range p.BudgetLines {
			out.BudgetLines[i] = b.clone()
		}
	}
	return out
}
