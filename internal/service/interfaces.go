package service

import (
	"context"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	// Get resolves ref as a project id or code.
	Get(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, ref string) error
	Unarchive(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string, force bool) error
}

type LedgerService interface {
	app.ApplyIntentsUseCase
}

type StatusService interface {
	app.StatusUseCase
}

type ReportService interface {
	app.ReportUseCase
}

type ImportService interface {
	app.ImportUseCase
}

// SnapshotService serves generated illustrative data for finished projects
// that have no stage records of their own.
type SnapshotService interface {
	Snapshot(ctx context.Context, ref string) (*domain.Project, error)
}
