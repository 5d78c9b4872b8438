package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	db       db.DBTX
	uow      db.UnitOfWork
	reducer  ledger.Reducer
	clock    clockFunc
	observer UseCaseObserver
}

func NewProjectService(q db.DBTX, uow db.UnitOfWork, orphans ledger.OrphanPolicy, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		db:       q,
		uow:      uow,
		reducer:  ledger.NewReducer(orphans),
		clock:    clockOrNow(nil),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create validates p as if it were built by edit intents and stores it with
// its stages and budget lines. On success p holds the stored state.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "create-project", map[string]any{"code": p.Code})(&err)

	if p.Synthetic {
		return ErrSynthetic
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if err = p.ValidateCode(); err != nil {
		return err
	}

	header := domain.Project{
		ID:   p.ID,
		Code: p.Code,
	}
	if header.ID == "" {
		header.ID = uuid.New().String()
	}
	built, err := s.reducer.ReduceAll(header, buildIntents(p)...)
	if err != nil {
		return err
	}
	now := s.clock()
	built.CreatedAt = now
	built.UpdatedAt = now
	built.ArchivedAt = p.ArchivedAt

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewProjectStore(tx).Insert(ctx, &built)
	})
	if err != nil {
		return err
	}
	*p = built
	return nil
}

func (s *projectService) Get(ctx context.Context, ref string) (*domain.Project, error) {
	return repository.NewProjectStore(s.db).Load(ctx, ref)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return repository.NewProjectStore(s.db).LoadAll(ctx, includeArchived)
}

func (s *projectService) Archive(ctx context.Context, ref string) (err error) {
	defer observe(ctx, s.observer, "archive-project", map[string]any{"project": ref})(&err)
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewProjectStore(tx)
		p, err := store.Load(ctx, ref)
		if err != nil {
			return err
		}
		return store.Archive(ctx, p.ID)
	})
}

func (s *projectService) Unarchive(ctx context.Context, ref string) (err error) {
	defer observe(ctx, s.observer, "unarchive-project", map[string]any{"project": ref})(&err)
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewProjectStore(tx)
		p, err := store.Load(ctx, ref)
		if err != nil {
			return err
		}
		return store.Unarchive(ctx, p.ID)
	})
}

// Delete removes an archived project. force skips the archive requirement.
func (s *projectService) Delete(ctx context.Context, ref string, force bool) (err error) {
	defer observe(ctx, s.observer, "delete-project", map[string]any{"project": ref, "force": force})(&err)
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewProjectStore(tx)
		p, err := store.Load(ctx, ref)
		if err != nil {
			return err
		}
		if !force && !p.IsArchived() {
			return ErrNotArchived
		}
		return store.Delete(ctx, p.ID)
	})
}
