package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/contract"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/export"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/gin-gonic/gin"
)

const maxIntentBody = 1 << 20

func (s *Server) listProjects(c *gin.Context) {
	projects, err := s.svc.Projects.List(c.Request.Context(), queryBool(c, "archived"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	now := s.clock()
	out := make([]contract.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, contract.NewProjectDTO(p, now))
	}
	c.JSON(http.StatusOK, gin.H{"projects": out})
}

func (s *Server) getProject(c *gin.Context) {
	p, err := s.svc.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewProjectDTO(p, s.clock()))
}

func (s *Server) projectSnapshot(c *gin.Context) {
	p, err := s.svc.Snapshots.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewProjectDTO(p, s.clock()))
}

func (s *Server) projectStatus(c *gin.Context) {
	req := app.NewStatusRequest()
	req.ProjectScope = []string{c.Param("id")}
	req.IncludeArchived = true
	s.writeStatus(c, req, true)
}

func (s *Server) status(c *gin.Context) {
	req := app.NewStatusRequest()
	req.IncludeArchived = queryBool(c, "archived")
	if v, ok := c.GetQuery("finished"); ok {
		req.IncludeFinished = v == "true" || v == "1"
	}
	s.writeStatus(c, req, false)
}

func (s *Server) writeStatus(c *gin.Context, req app.StatusRequest, single bool) {
	now := s.clock()
	req.Now = &now
	resp, err := s.svc.Status.GetStatus(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	dto := contract.NewStatusDTO(resp)
	if single && len(dto.Projects) == 1 {
		c.JSON(http.StatusOK, dto.Projects[0])
		return
	}
	c.JSON(http.StatusOK, dto)
}

// applyIntents commits a JSON array of intent envelopes as one editing session.
func (s *Server) applyIntents(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIntentBody))
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: reading body: %v", contract.ErrMalformedIntent, err))
		return
	}
	intents, err := contract.DecodeIntents(body)
	if err != nil {
		s.writeError(c, err)
		return
	}
	p, err := s.svc.Ledger.Apply(c.Request.Context(), c.Param("id"), intents...)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewProjectDTO(p, s.clock()))
}

// report serves GET /api/reports/:kind?year=&month=&jenis=&status=&sort=&archived=&format=
func (s *Server) report(c *gin.Context) {
	req, err := reportRequest(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatJSON)))
	if err != nil {
		s.writeError(c, &app.ReportError{Code: app.ReportErrInvalidFilter, Message: err.Error()})
		return
	}

	resp, err := s.svc.Reports.Report(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if format == export.FormatCSV {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%d.csv", resp.Kind, resp.Year))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, resp.Rows); err != nil {
			s.logger.Error("writing csv", "error", err, "request_id", GetRequestID(c))
		}
		return
	}
	c.JSON(http.StatusOK, contract.NewReportDTO(resp))
}

func reportRequest(c *gin.Context) (app.ReportRequest, error) {
	kind, err := app.ParseReportKind(c.Param("kind"))
	if err != nil {
		return app.ReportRequest{}, err
	}
	req := app.ReportRequest{
		Kind:            kind,
		JobType:         c.Query("jenis"),
		Status:          domain.PaymentStatus(c.Query("status")),
		Sort:            invoice.SortMode(c.Query("sort")),
		IncludeArchived: queryBool(c, "archived"),
	}
	if req.Year, err = queryInt(c, "year"); err != nil {
		return req, err
	}
	if req.Month, err = queryInt(c, "month"); err != nil {
		return req, err
	}
	return req, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &app.ReportError{Code: app.ReportErrInvalidFilter, Message: fmt.Sprintf("%s must be a number, got %q", key, v)}
	}
	return n, nil
}

func queryBool(c *gin.Context, key string) bool {
	v := c.Query(key)
	return v == "true" || v == "1"
}
