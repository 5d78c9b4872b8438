package service

import (
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
)

type clockFunc func() time.Time

func clockOrNow(clock func() time.Time) clockFunc {
	if clock != nil {
		return clock
	}
	return func() time.Time { return time.Now().UTC() }
}

// headerIntent restates the header of p as an UpdateProject intent so new
// projects pass through the same validation as edits.
func headerIntent(p *domain.Project) ledger.UpdateProject {
	return ledger.UpdateProject{
		Name:           p.Name,
		Client:         p.Client,
		JobType:        p.JobType,
		ContractNumber: p.ContractNumber,
		ContractValue:  p.ContractValue,
		Location:       p.Location,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         domain.ProjectStatus(domain.CoalesceStr(string(p.Status), string(domain.ProjectPreparation))),
		Tender:         p.Tender,
	}
}

// buildIntents replays the header, stages and budget lines of p.
func buildIntents(p *domain.Project) []ledger.Intent {
	intents := make([]ledger.Intent, 0, 1+len(p.Stages)+len(p.BudgetLines))
	intents = append(intents, headerIntent(p))
	for _, s := range p.Stages {
		intents = append(intents, ledger.AddStage{Stage: s})
	}
	for _, b := range p.BudgetLines {
		intents = append(intents, ledger.AddBudgetLine{Line: b})
	}
	return intents
}

// filterProjectsByScope keeps projects whose id or code is in scope.
// An empty scope keeps everything.
func filterProjectsByScope(projects []*domain.Project, scope []string) []*domain.Project {
	if len(scope) == 0 {
		return projects
	}
	scopeSet := make(map[string]bool, len(scope))
	for _, ref := range scope {
		scopeSet[strings.ToUpper(ref)] = true
	}
	var filtered []*domain.Project
	for _, p := range projects {
		if scopeSet[strings.ToUpper(p.ID)] || scopeSet[strings.ToUpper(p.Code)] {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func values(projects []*domain.Project) []domain.Project {
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		out[i] = *p
	}
	return out
}
