package repository

import (
	"context"

	"github.com/alexanderramin/proyek/internal/domain"
)

// ProjectRepo persists the project header row. Stages and budget lines are
// stored by their own repos and stitched together by ProjectStore.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type StageRepo interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error)
	ReplaceForProject(ctx context.Context, projectID string, stages []domain.Stage) error
}

type BudgetLineRepo interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.BudgetLine, error)
	ReplaceForProject(ctx context.Context, projectID string, lines []domain.BudgetLine) error
}
