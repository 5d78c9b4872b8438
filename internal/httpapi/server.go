// Package httpapi serves projects, status and invoice reports as JSON and
// accepts edit intents over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/proyek/internal/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Services are the use cases the API exposes.
type Services struct {
	Projects  service.ProjectService
	Ledger    service.LedgerService
	Status    service.StatusService
	Reports   service.ReportService
	Snapshots service.SnapshotService
}

type Server struct {
	svc    Services
	logger *slog.Logger
	clock  func() time.Time
}

// NewServer builds the API. clock supplies "today" for derived display
// states; nil means the wall clock.
func NewServer(svc Services, logger *slog.Logger, clock func() time.Time) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Server{svc: svc, logger: logger.With("component", "http"), clock: clock}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery(s.logger))
	router.Use(RequestLogger(s.logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": s.clock().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.GET("/projects", s.listProjects)
		api.GET("/projects/:id", s.getProject)
		api.GET("/projects/:id/status", s.projectStatus)
		api.GET("/projects/:id/snapshot", s.projectSnapshot)
		api.POST("/projects/:id/intents", s.applyIntents)
		api.GET("/reports/:kind", s.report)
		api.GET("/status", s.status)
	}
	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
