package app

import (
	"fmt"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/invoice"
)

type ReportKind string

const (
	ReportTracking   ReportKind = "tracking"
	ReportProjection ReportKind = "projection"
	ReportRecap      ReportKind = "recap"
)

func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case ReportTracking, ReportProjection, ReportRecap:
		return ReportKind(s), nil
	}
	return "", &ReportError{Code: ReportErrInvalidFilter, Message: fmt.Sprintf("unknown report %q (tracking|projection|recap)", s)}
}

// ReportRequest selects one invoice view. Zero filter fields do not filter.
// Month is ignored by projection; Status and Sort are ignored by recap.
type ReportRequest struct {
	Kind            ReportKind
	Year            int
	Month           int
	JobType         string
	Status          domain.PaymentStatus
	Sort            invoice.SortMode
	IncludeArchived bool
}

type ReportTotals struct {
	Billed  domain.Money
	Paid    domain.Money
	Pending domain.Money
	Overdue domain.Money
}

type ReportResponse struct {
	Kind   ReportKind
	Year   int
	Rows   []invoice.Row
	Totals ReportTotals
	// Months is set for projection reports only.
	Months *[12]invoice.MonthBucket
}

type ReportErrorCode string

const (
	ReportErrYearRequired  ReportErrorCode = "YEAR_REQUIRED"
	ReportErrInvalidMonth  ReportErrorCode = "INVALID_MONTH"
	ReportErrInvalidFilter ReportErrorCode = "INVALID_FILTER"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}
