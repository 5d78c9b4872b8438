package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/importer"
	"github.com/alexanderramin/proyek/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	clock    clockFunc
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		clock:    clockOrNow(nil),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	dump, err := importer.LoadStoreDump(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDump(ctx, dump)
}

// ImportDump stores every record of dump in one transaction. Records whose
// id or code already exists are skipped and reported.
func (s *importService) ImportDump(ctx context.Context, dump *importer.StoreDump) (result *app.ImportResult, err error) {
	defer observe(ctx, s.observer, "import", map[string]any{"records": len(dump.Projects)})(&err)

	if errs := importer.ValidateStoreDump(dump); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(dump, s.clock())
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}
	for _, w := range converted.Warnings {
		slog.WarnContext(ctx, "import_warning", "detail", w)
	}

	result = &app.ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)
		store := repository.NewProjectStore(tx)
		for _, p := range converted.Projects {
			exists, err := projectExists(ctx, repo, p.ID, p.Code)
			if err != nil {
				return err
			}
			if exists {
				result.Skipped = append(result.Skipped, p.DisplayID())
				continue
			}
			if err := store.Insert(ctx, p); err != nil {
				return fmt.Errorf("creating project %s: %w", p.DisplayID(), err)
			}
			result.Projects = append(result.Projects, p)
			result.StageCount += len(p.Stages)
			result.BudgetLineCount += len(p.BudgetLines)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func projectExists(ctx context.Context, repo repository.ProjectRepo, id, code string) (bool, error) {
	_, err := repo.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	_, err = repo.GetByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return false, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
