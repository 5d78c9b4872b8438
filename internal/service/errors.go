package service

import "errors"

var (
	// ErrSynthetic rejects writes of generated snapshot projects.
	ErrSynthetic = errors.New("generated snapshot data cannot be saved")

	ErrNotArchived = errors.New("project must be archived before deletion (use --force to override)")

	// ErrNotEligible is returned when a snapshot is requested for a project
	// that is unfinished or already has stage records.
	ErrNotEligible = errors.New("snapshots are only generated for finished projects without stages")
)
