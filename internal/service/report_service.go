package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/db"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/alexanderramin/proyek/internal/repository"
)

type reportService struct {
	db       db.DBTX
	observer UseCaseObserver
}

func NewReportService(q db.DBTX, observers ...UseCaseObserver) ReportService {
	return &reportService{db: q, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) Report(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	defer observe(ctx, s.observer, "report", map[string]any{
		"kind": string(req.Kind),
		"year": req.Year,
	})(&err)

	if err := validateReportRequest(req); err != nil {
		return nil, err
	}

	stored, err := repository.NewProjectStore(s.db).LoadAll(ctx, req.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	projects := values(stored)

	resp = &app.ReportResponse{Kind: req.Kind, Year: req.Year}
	switch req.Kind {
	case app.ReportTracking:
		resp.Rows = invoice.Tracking(projects, invoice.TrackingFilter{
			Year:    req.Year,
			Month:   req.Month,
			JobType: req.JobType,
			Status:  req.Status,
			Sort:    req.Sort,
		})
		resp.Totals = totalsOf(resp.Rows)
	case app.ReportProjection:
		proj := invoice.Project(projects, req.Year, invoice.ProjectionFilter{
			JobType: req.JobType,
			Status:  req.Status,
		})
		resp.Rows = proj.Rows
		resp.Months = &proj.Months
		resp.Totals = app.ReportTotals{
			Billed:  proj.Totals.Total(),
			Paid:    proj.Totals.Paid,
			Pending: proj.Totals.Pending,
			Overdue: proj.Totals.Overdue,
		}
	case app.ReportRecap:
		recap := invoice.BuildRecap(projects, req.Year, invoice.RecapFilter{
			Month:   req.Month,
			JobType: req.JobType,
		})
		resp.Rows = recap.Rows
		resp.Totals = app.ReportTotals{
			Billed:  recap.TotalBilled,
			Paid:    recap.TotalPaid,
			Pending: recap.TotalPending,
			Overdue: recap.TotalOverdue,
		}
	}
	return resp, nil
}

func validateReportRequest(req app.ReportRequest) error {
	if _, err := app.ParseReportKind(string(req.Kind)); err != nil {
		return err
	}
	if req.Year < 0 {
		return &app.ReportError{Code: app.ReportErrInvalidFilter, Message: fmt.Sprintf("invalid year %d", req.Year)}
	}
	if req.Kind != app.ReportTracking && req.Year == 0 {
		return &app.ReportError{Code: app.ReportErrYearRequired, Message: fmt.Sprintf("%s report needs a year", req.Kind)}
	}
	if req.Month < 0 || req.Month > 12 {
		return &app.ReportError{Code: app.ReportErrInvalidMonth, Message: fmt.Sprintf("month %d is not between 1 and 12", req.Month)}
	}
	if req.Status != "" {
		if _, err := domain.ParsePaymentStatus(string(req.Status)); err != nil {
			return &app.ReportError{Code: app.ReportErrInvalidFilter, Message: err.Error()}
		}
	}
	if _, err := invoice.ParseSortMode(string(req.Sort)); err != nil {
		return &app.ReportError{Code: app.ReportErrInvalidFilter, Message: err.Error()}
	}
	return nil
}

func totalsOf(rows []invoice.Row) app.ReportTotals {
	var t app.ReportTotals
	for _, r := range rows {
		t.Billed += r.Amount
		switch r.Status {
		case domain.PaymentPaid:
			t.Paid += r.Amount
		case domain.PaymentOverdue:
			t.Overdue += r.Amount
		default:
			t.Pending += r.Amount
		}
	}
	return t
}
