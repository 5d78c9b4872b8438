package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
)

// ProjectStore reads and writes whole project aggregates: the header row,
// its stages and its budget lines. Run writes inside a UnitOfWork.
type ProjectStore struct {
	projects *SQLiteProjectRepo
	stages   *SQLiteStageRepo
	budget   *SQLiteBudgetLineRepo
}

func NewProjectStore(q db.DBTX) *ProjectStore {
	return &ProjectStore{
		projects: NewSQLiteProjectRepo(q),
		stages:   NewSQLiteStageRepo(q),
		budget:   NewSQLiteBudgetLineRepo(q),
	}
}

// Load resolves ref as an id first and as a project code second.
func (s *ProjectStore) Load(ctx context.Context, ref string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, ref)
	if err != nil {
		p, err = s.projects.GetByCode(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if err := s.attach(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectStore) LoadAll(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if err := s.attach(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (s *ProjectStore) attach(ctx context.Context, p *domain.Project) error {
	var err error
	if p.Stages, err = s.stages.ListByProject(ctx, p.ID); err != nil {
		return fmt.Errorf("loading stages for %s: %w", p.DisplayID(), err)
	}
	if p.BudgetLines, err = s.budget.ListByProject(ctx, p.ID); err != nil {
		return fmt.Errorf("loading budget for %s: %w", p.DisplayID(), err)
	}
	return nil
}

// Insert stores a new project with its children.
func (s *ProjectStore) Insert(ctx context.Context, p *domain.Project) error {
	if err := s.projects.Create(ctx, p); err != nil {
		return err
	}
	return s.writeChildren(ctx, p)
}

// Save overwrites an existing project and its children.
func (s *ProjectStore) Save(ctx context.Context, p *domain.Project) error {
	if err := s.projects.Update(ctx, p); err != nil {
		return err
	}
	return s.writeChildren(ctx, p)
}

// writeChildren clears budget lines before stages so the stage delete never
// rewrites lines that are about to be reinserted anyway.
func (s *ProjectStore) writeChildren(ctx context.Context, p *domain.Project) error {
	if err := s.budget.ReplaceForProject(ctx, p.ID, nil); err != nil {
		return err
	}
	if err := s.stages.ReplaceForProject(ctx, p.ID, p.Stages); err != nil {
		return err
	}
	return s.budget.ReplaceForProject(ctx, p.ID, p.BudgetLines)
}

func (s *ProjectStore) Archive(ctx context.Context, id string) error {
	return s.projects.Archive(ctx, id)
}

func (s *ProjectStore) Unarchive(ctx context.Context, id string) error {
	return s.projects.Unarchive(ctx, id)
}

func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
