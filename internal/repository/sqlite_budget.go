package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
)

// SQLiteBudgetLineRepo implements BudgetLineRepo using a SQLite database.
// Line order is preserved through the position column.
type SQLiteBudgetLineRepo struct {
	db db.DBTX
}

func NewSQLiteBudgetLineRepo(db db.DBTX) *SQLiteBudgetLineRepo {
	return &SQLiteBudgetLineRepo{db: db}
}

const budgetLineColumns = `id, stage_id, category, description, planned, realized, files`

func (r *SQLiteBudgetLineRepo) ListByProject(ctx context.Context, projectID string) ([]domain.BudgetLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+budgetLineColumns+` FROM budget_lines WHERE project_id = ? ORDER BY position, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing budget lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.BudgetLine
	for rows.Next() {
		var b domain.BudgetLine
		var stageID sql.NullString
		var planned, realized int64
		var files string
		if err := rows.Scan(&b.ID, &stageID, &b.Category, &b.Description, &planned, &realized, &files); err != nil {
			return nil, fmt.Errorf("scanning budget line row: %w", err)
		}
		b.StageID = stageID.String
		b.Planned = domain.Money(planned)
		b.Realized = domain.Money(realized)
		if b.Files, err = decodeFiles(files); err != nil {
			return nil, fmt.Errorf("budget line %s: %w", b.ID, err)
		}
		lines = append(lines, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget lines: %w", err)
	}
	return lines, nil
}

func (r *SQLiteBudgetLineRepo) ReplaceForProject(ctx context.Context, projectID string, lines []domain.BudgetLine) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM budget_lines WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing budget lines: %w", err)
	}

	query := `INSERT INTO budget_lines (project_id, position, ` + budgetLineColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, b := range lines {
		files, err := encodeFiles(b.Files)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, query,
			projectID,
			i,
			b.ID,
			nullableID(b.StageID),
			b.Category,
			b.Description,
			int64(b.Planned),
			int64(b.Realized),
			files,
		)
		if err != nil {
			return fmt.Errorf("inserting budget line %q: %w", b.Description, err)
		}
	}
	return nil
}
