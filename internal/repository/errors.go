package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCode is returned when another project already uses the code.
	ErrDuplicateCode = errors.New("project code already in use")
)

func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
