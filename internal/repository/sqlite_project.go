package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, code, name, client, job_type, contract_number, contract_value, location,
	start_date, end_date, status, progress, tender_source, tender_number, tender_agency,
	archived_at, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.Synthetic {
		return fmt.Errorf("inserting project: synthetic projects are read-only")
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Code,
		p.Name,
		p.Client,
		p.JobType,
		p.ContractNumber,
		int64(p.ContractValue),
		p.Location,
		p.StartDate.Format(dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		string(p.Status),
		p.Progress,
		string(p.Tender.Source),
		p.Tender.Number,
		p.Tender.Agency,
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err, "code") {
			return fmt.Errorf("inserting project %s: %w", p.Code, ErrDuplicateCode)
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

// GetByCode matches case-insensitively.
func (r *SQLiteProjectRepo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE code != '' AND UPPER(code) = UPPER(?)`
	return r.scanProject(r.db.QueryRowContext(ctx, query, code))
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at, code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()
	return r.scanProjects(rows)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if p.Synthetic {
		return fmt.Errorf("updating project: synthetic projects are read-only")
	}
	query := `UPDATE projects SET code = ?, name = ?, client = ?, job_type = ?, contract_number = ?,
		contract_value = ?, location = ?, start_date = ?, end_date = ?, status = ?, progress = ?,
		tender_source = ?, tender_number = ?, tender_agency = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		p.Client,
		p.JobType,
		p.ContractNumber,
		int64(p.ContractValue),
		p.Location,
		p.StartDate.Format(dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		string(p.Status),
		p.Progress,
		string(p.Tender.Source),
		p.Tender.Number,
		p.Tender.Agency,
		p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "code") {
			return fmt.Errorf("updating project %s: %w", p.Code, ErrDuplicateCode)
		}
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project")
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET archived_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return requireAffected(res, "project")
}

func (r *SQLiteProjectRepo) Unarchive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET archived_at = NULL, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("unarchiving project: %w", err)
	}
	return requireAffected(res, "project")
}

// Delete removes the project; stages and budget lines go with it.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project")
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

type projectRow struct {
	p                         domain.Project
	contractValue             int64
	startDate, status, tender string
	endDate, archivedAt       sql.NullString
	createdAt, updatedAt      string
}

func (pr *projectRow) dest() []any {
	p := &pr.p
	return []any{
		&p.ID, &p.Code, &p.Name, &p.Client, &p.JobType, &p.ContractNumber, &pr.contractValue, &p.Location,
		&pr.startDate, &pr.endDate, &pr.status, &p.Progress, &pr.tender, &p.Tender.Number, &p.Tender.Agency,
		&pr.archivedAt, &pr.createdAt, &pr.updatedAt,
	}
}

// scanProject scans a single project from a *sql.Row.
func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var pr projectRow
	if err := row.Scan(pr.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return pr.populate()
}

// scanProjects scans multiple projects from *sql.Rows.
func (r *SQLiteProjectRepo) scanProjects(rows *sql.Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		var pr projectRow
		if err := rows.Scan(pr.dest()...); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		p, err := pr.populate()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (pr *projectRow) populate() (*domain.Project, error) {
	p := pr.p
	p.ContractValue = domain.Money(pr.contractValue)
	p.Status = domain.ProjectStatus(pr.status)
	p.Tender.Source = domain.TenderSource(pr.tender)

	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, pr.startDate)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, pr.createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, pr.updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	p.EndDate = parseNullableTime(pr.endDate, dateLayout)
	p.ArchivedAt = parseNullableTime(pr.archivedAt, time.RFC3339)
	return &p, nil
}
