package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	end := testutil.Date(2026, 12, 31)
	proj := testutil.NewTestProject("Jalan Desa",
		testutil.WithEndDate(end),
		testutil.WithContractValue(1_250_000_000),
	)
	proj.Tender = domain.Tender{Source: domain.SourceTender, Number: "PL-07", Agency: "LPSE Kab. Bogor"}
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Jalan Desa", fetched.Name)
	assert.Equal(t, domain.ProjectRunning, fetched.Status)
	assert.Equal(t, domain.Money(1_250_000_000), fetched.ContractValue)
	assert.Equal(t, proj.Tender, fetched.Tender)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, "2026-12-31", fetched.EndDate.Format(domain.DateLayout))
	assert.Nil(t, fetched.ArchivedAt)
}

func TestProjectRepo_GetByCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Gedung", testutil.WithCode("GDG01"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByCode(ctx, "gdg01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "GDG01", fetched.Code)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_DuplicateCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithCode("JLN01"))))
	err := repo.Create(ctx, testutil.NewTestProject("B", testutil.WithCode("JLN01")))
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestProjectRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p1 := testutil.NewTestProject("Active1")
	p2 := testutil.NewTestProject("Active2")
	p3 := testutil.NewTestProject("Archived")
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
	require.NoError(t, repo.Create(ctx, p3))
	require.NoError(t, repo.Archive(ctx, p3.ID))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	listAll, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listAll, 3)

	archived, err := repo.GetByID(ctx, p3.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived())
	assert.Equal(t, domain.ProjectRunning, archived.Status, "archiving keeps the execution status")

	require.NoError(t, repo.Unarchive(ctx, p3.ID))
	list, err = repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Irigasi")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Irigasi Tersier"
	proj.Status = domain.ProjectCompleted
	proj.Progress = 62.5
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Irigasi Tersier", fetched.Name)
	assert.Equal(t, domain.ProjectCompleted, fetched.Status)
	assert.InDelta(t, 62.5, fetched.Progress, 0.001)
}

func TestProjectRepo_UnknownIDIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	ghost := testutil.NewTestProject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
	assert.ErrorIs(t, repo.Archive(ctx, ghost.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ghost.ID), ErrNotFound)
}

func TestProjectRepo_RejectsSynthetic(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	proj := testutil.NewTestProject("Demo")
	proj.Synthetic = true
	assert.Error(t, repo.Create(context.Background(), proj))

	list, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, list)
}
