package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/repository"
)

type ledgerService struct {
	uow      db.UnitOfWork
	reducer  ledger.Reducer
	clock    clockFunc
	observer UseCaseObserver
}

func NewLedgerService(uow db.UnitOfWork, orphans ledger.OrphanPolicy, observers ...UseCaseObserver) LedgerService {
	return &ledgerService{
		uow:      uow,
		reducer:  ledger.NewReducer(orphans),
		clock:    clockOrNow(nil),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Apply loads the project, reduces every intent and saves the result in one
// transaction. Nothing is written unless all intents succeed.
func (s *ledgerService) Apply(ctx context.Context, projectRef string, intents ...ledger.Intent) (result *domain.Project, err error) {
	kinds := make([]string, 0, len(intents))
	for _, in := range intents {
		if in != nil {
			kinds = append(kinds, in.Kind())
		}
	}
	defer observe(ctx, s.observer, "apply-intents", map[string]any{
		"project": projectRef,
		"intents": kinds,
	})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewProjectStore(tx)
		current, err := store.Load(ctx, projectRef)
		if err != nil {
			return err
		}
		next, err := s.reducer.ReduceAll(*current, intents...)
		if err != nil {
			return err
		}
		if next.Synthetic {
			return ErrSynthetic
		}
		next.UpdatedAt = s.clock()
		if err := store.Save(ctx, &next); err != nil {
			return fmt.Errorf("saving %s: %w", next.DisplayID(), err)
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
