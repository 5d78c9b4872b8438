package domain

import "fmt"

// ProjectStatus is the execution phase of a project (status pekerjaan).
type ProjectStatus string

const (
	ProjectPreparation ProjectStatus = "persiapan"
	ProjectRunning     ProjectStatus = "berjalan"
	ProjectCompleted   ProjectStatus = "selesai"
	ProjectHandedOver  ProjectStatus = "serah_terima"
)

// Finished reports whether the project is past execution.
func (s ProjectStatus) Finished() bool {
	return s == ProjectCompleted || s == ProjectHandedOver
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case ProjectPreparation, ProjectRunning, ProjectCompleted, ProjectHandedOver:
		return ProjectStatus(s), nil
	}
	return "", fmt.Errorf("invalid project status %q (persiapan|berjalan|selesai|serah_terima)", s)
}

type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "progress"
	StageDone       StageStatus = "done"

	// StageOverdue is never stored. It is the display state of a stage whose
	// end date has passed without completion.
	StageOverdue StageStatus = "overdue"
)

func ParseStageStatus(s string) (StageStatus, error) {
	switch StageStatus(s) {
	case StagePending, StageInProgress, StageDone:
		return StageStatus(s), nil
	case "":
		return StagePending, nil
	}
	return "", fmt.Errorf("invalid stage status %q (pending|progress|done)", s)
}

// Next cycles pending -> progress -> done -> pending.
func (s StageStatus) Next() StageStatus {
	switch s {
	case StagePending:
		return StageInProgress
	case StageInProgress:
		return StageDone
	default:
		return StagePending
	}
}

// PaymentStatus is the invoice payment state of a stage. The zero value is
// treated as PaymentPending everywhere.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "lunas"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// OrDefault returns PaymentPending for the empty status.
func (s PaymentStatus) OrDefault() PaymentStatus {
	if s == "" {
		return PaymentPending
	}
	return s
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return PaymentStatus(s), nil
	case "":
		return PaymentPending, nil
	}
	return "", fmt.Errorf("invalid payment status %q (lunas|pending|overdue)", s)
}

// DeadlineState is the project-level schedule health, recomputed on read.
type DeadlineState string

const (
	DeadlineSafe     DeadlineState = "safe"
	DeadlineWarning  DeadlineState = "warning"
	DeadlineCritical DeadlineState = "critical"
	DeadlineOverdue  DeadlineState = "overdue"
)

// DeadlinePriority orders states by severity, most severe first.
func DeadlinePriority(s DeadlineState) int {
	switch s {
	case DeadlineOverdue:
		return 0
	case DeadlineCritical:
		return 1
	case DeadlineWarning:
		return 2
	case DeadlineSafe:
		return 3
	default:
		return 4
	}
}

// TenderSource records how the project was won.
type TenderSource string

const (
	SourceTender    TenderSource = "tender"
	SourceNonTender TenderSource = "non_tender"
)

func ParseTenderSource(s string) (TenderSource, error) {
	switch TenderSource(s) {
	case SourceTender, SourceNonTender:
		return TenderSource(s), nil
	case "":
		return SourceNonTender, nil
	}
	return "", fmt.Errorf("invalid tender source %q (tender|non_tender)", s)
}
