package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/contract"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/repository"
	"github.com/alexanderramin/proyek/internal/service"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps err to a status code. Unrecognised errors are logged and
// reported as a bare 500.
func (s *Server) writeError(c *gin.Context, err error) {
	body := errorBody{Error: err.Error(), RequestID: GetRequestID(c)}
	status := http.StatusInternalServerError

	var (
		verr *ledger.ValidationError
		rerr *app.ReportError
		serr *app.StatusError
	)
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		body.Code = string(verr.Code)
		body.Field = verr.Field
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, contract.ErrMalformedIntent):
		status = http.StatusBadRequest
		body.Code = "MALFORMED_INTENT"
	case errors.As(err, &rerr):
		status = http.StatusBadRequest
		body.Code = string(rerr.Code)
	case errors.As(err, &serr):
		status = http.StatusBadRequest
		body.Code = string(serr.Code)
	case errors.Is(err, service.ErrNotEligible), errors.Is(err, service.ErrSynthetic):
		status = http.StatusConflict
	default:
		s.logger.Error("request failed", "error", err, "request_id", body.RequestID)
		body.Error = "internal server error"
	}
	c.AbortWithStatusJSON(status, body)
}
