// Package server exposes holiday lookups over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/joshuadavidthomas/bihucal/internal/calendar"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// Lookuper is the part of holidays.Provider the server needs.
type Lookuper interface {
	Lookup(ctx context.Context, year int, opts holidays.LookupOptions) holidays.Outcome
}

type Server struct {
	provider Lookuper
	logger   *log.Logger
	engine   *gin.Engine
	now      func() time.Time
}

// New builds the router. Request logs go to the logger carried by ctx.
func New(ctx context.Context, provider Lookuper) *Server {
	s := &Server{
		provider: provider,
		logger:   logging.FromContext(ctx),
		engine:   gin.New(),
		now:      time.Now,
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/holidays/:year", s.getHolidays)
	api.GET("/holidays/:year/ics", s.getICS)
}

// Handler returns the router for use with net/http or httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), s.logger))
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}
}

func errorJSON(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) lookup(c *gin.Context) (holidays.Outcome, bool) {
	year, err := calendar.ParseYear(c.Param("year"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return holidays.Outcome{}, false
	}
	opts := holidays.LookupOptions{Refresh: c.Query("refresh") == "true"}
	return s.provider.Lookup(c.Request.Context(), year, opts), true
}

func (s *Server) getHolidays(c *gin.Context) {
	var cat models.Category
	if raw := c.Query("category"); raw != "" {
		parsed, err := models.ParseCategory(raw)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
		cat = parsed
	}

	outcome, ok := s.lookup(c)
	if !ok {
		return
	}
	if cat != "" {
		outcome.Holidays = models.FilterByCategory(outcome.Holidays, cat)
	}
	c.JSON(http.StatusOK, display.YearToJSON(outcome))
}

func (s *Server) getICS(c *gin.Context) {
	outcome, ok := s.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=holidays_%d.ics", outcome.Year))
	c.Status(http.StatusOK)
	if err := display.WriteICS(c.Writer, outcome.Year, outcome.Holidays, s.now()); err != nil {
		s.logger.Error("writing ics", "year", outcome.Year, "err", err)
	}
}
