package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/proyek/internal/domain"
)

// resolveStage finds a stage by its 1-based number, full id, or unique id
// prefix.
func resolveStage(p *domain.Project, ref string) (domain.Stage, error) {
	if ref == "" {
		return domain.Stage{}, fmt.Errorf("stage is required")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		s, ok := p.StageByNumber(n)
		if !ok {
			return domain.Stage{}, fmt.Errorf("project %s has no stage #%d", p.DisplayID(), n)
		}
		return s, nil
	}
	if s, ok := p.StageByID(ref); ok {
		return s, nil
	}

	var matches []domain.Stage
	for _, s := range p.Stages {
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Stage{}, fmt.Errorf("stage not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Stage{}, fmt.Errorf("stage id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveLine finds a budget line by full id or unique id prefix.
func resolveLine(p *domain.Project, ref string) (domain.BudgetLine, error) {
	if ref == "" {
		return domain.BudgetLine{}, fmt.Errorf("budget line id is required")
	}
	var matches []domain.BudgetLine
	for _, b := range p.BudgetLines {
		if b.ID == ref {
			return b, nil
		}
		if strings.HasPrefix(b.ID, ref) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return domain.BudgetLine{}, fmt.Errorf("budget line not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.BudgetLine{}, fmt.Errorf("budget line id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveStageID maps an optional stage reference to its id. Empty stays empty.
func resolveStageID(p *domain.Project, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	s, err := resolveStage(p, ref)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}
