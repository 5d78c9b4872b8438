package service

import (
	"context"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/repository"
	"github.com/alexanderramin/proyek/internal/snapshot"
)

type snapshotService struct {
	db db.DBTX
}

func NewSnapshotService(q db.DBTX) SnapshotService {
	return &snapshotService{db: q}
}

// Snapshot returns generated data for ref. The result is flagged Synthetic
// and is never stored.
func (s *snapshotService) Snapshot(ctx context.Context, ref string) (*domain.Project, error) {
	p, err := repository.NewProjectStore(s.db).Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	out, ok := snapshot.Generate(*p)
	if !ok {
		return nil, ErrNotEligible
	}
	return &out, nil
}
