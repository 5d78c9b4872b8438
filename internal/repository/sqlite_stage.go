package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
)

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

func NewSQLiteStageRepo(db db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: db}
}

const stageColumns = `id, number, name, weight, status, start_date, end_date,
	invoice_date, expected_invoice_date, invoice_amount, payment_status, files`

func (r *SQLiteStageRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE project_id = ? ORDER BY number`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()
	return r.scanStages(rows)
}

// ReplaceForProject rewrites the project's stage set. Budget lines pointing at
// a removed stage are detached by the foreign key, so callers that keep lines
// must rewrite them afterwards.
func (r *SQLiteStageRepo) ReplaceForProject(ctx context.Context, projectID string, stages []domain.Stage) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing stages: %w", err)
	}

	query := `INSERT INTO stages (project_id, ` + stageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, s := range stages {
		files, err := encodeFiles(s.Files)
		if err != nil {
			return err
		}
		status := s.Status
		if status == "" {
			status = domain.StagePending
		}
		_, err = r.db.ExecContext(ctx, query,
			projectID,
			s.ID,
			s.Number,
			s.Name,
			s.Weight,
			string(status),
			nullableTimeToString(s.StartDate, dateLayout),
			nullableTimeToString(s.EndDate, dateLayout),
			nullableTimeToString(s.InvoiceDate, dateLayout),
			nullableTimeToString(s.ExpectedInvoiceDate, dateLayout),
			nullableMoney(s.InvoiceAmount),
			string(s.PaymentStatus.OrDefault()),
			files,
		)
		if err != nil {
			return fmt.Errorf("inserting stage %d: %w", s.Number, err)
		}
	}
	return nil
}

func (r *SQLiteStageRepo) scanStages(rows *sql.Rows) ([]domain.Stage, error) {
	var stages []domain.Stage
	for rows.Next() {
		var s domain.Stage
		var status, payment, files string
		var startDate, endDate, invoiceDate, expectedDate sql.NullString
		var amount sql.NullInt64

		err := rows.Scan(
			&s.ID, &s.Number, &s.Name, &s.Weight, &status, &startDate, &endDate,
			&invoiceDate, &expectedDate, &amount, &payment, &files,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}

		s.Status = domain.StageStatus(status)
		s.PaymentStatus = domain.PaymentStatus(payment)
		s.StartDate = parseNullableTime(startDate, dateLayout)
		s.EndDate = parseNullableTime(endDate, dateLayout)
		s.InvoiceDate = parseNullableTime(invoiceDate, dateLayout)
		s.ExpectedInvoiceDate = parseNullableTime(expectedDate, dateLayout)
		s.InvoiceAmount = moneyFromNull(amount)
		if s.Files, err = decodeFiles(files); err != nil {
			return nil, fmt.Errorf("stage %d: %w", s.Number, err)
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return stages, nil
}
