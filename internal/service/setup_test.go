package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) (*sql.DB, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, testutil.NewTestUoW(database)
}

// seedProject stores p through the project service and returns the stored copy.
func seedProject(t *testing.T, database *sql.DB, uow db.UnitOfWork, p *domain.Project) *domain.Project {
	t.Helper()
	svc := NewProjectService(database, uow, ledger.OrphanDetach)
	require.NoError(t, svc.Create(context.Background(), p))
	return p
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
