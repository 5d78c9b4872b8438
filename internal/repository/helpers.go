package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
)

const dateLayout = domain.DateLayout

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

func nullableMoney(m *domain.Money) any {
	if m == nil {
		return nil
	}
	return int64(*m)
}

func moneyFromNull(v sql.NullInt64) *domain.Money {
	if !v.Valid {
		return nil
	}
	m := domain.Money(v.Int64)
	return &m
}

// nullableID stores the empty string as NULL so foreign keys stay optional.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// encodeFiles stores attachment names as a JSON array, never NULL.
func encodeFiles(files []string) (string, error) {
	if len(files) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("encoding files: %w", err)
	}
	return string(b), nil
}

func decodeFiles(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var files []string
	if err := json.Unmarshal([]byte(s), &files); err != nil {
		return nil, fmt.Errorf("decoding files: %w", err)
	}
	return files, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
