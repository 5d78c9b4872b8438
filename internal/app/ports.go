package app

import (
	"context"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/importer"
	"github.com/alexanderramin/proyek/internal/ledger"
)

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type ReportUseCase interface {
	Report(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

// ApplyIntentsUseCase commits one editing session: every intent is applied
// in order and the project is saved only if all of them succeed.
type ApplyIntentsUseCase interface {
	Apply(ctx context.Context, projectRef string, intents ...ledger.Intent) (*domain.Project, error)
}

type ImportResult struct {
	Projects        []*domain.Project
	StageCount      int
	BudgetLineCount int
	// Skipped lists codes of records whose code was already taken.
	Skipped []string
}

type ImportUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportDump(ctx context.Context, dump *importer.StoreDump) (*ImportResult, error)
}
