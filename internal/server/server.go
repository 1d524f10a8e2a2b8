// Package server exposes the roster, rankings and AI helpers as a JSON API
// for the dashboard.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/staff"
)

const (
	DefaultAddress = "127.0.0.1:8080"

	maxUploadSize   = 10 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves HTTP requests
type Server struct {
	roster    *staff.Roster
	assistant *ai.Fallback
	logger    *zap.Logger
	router    *gin.Engine
}

func New(roster *staff.Roster, assistant *ai.Fallback, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assistant == nil {
		assistant = ai.NewFallback(nil, logger)
	}

	server := &Server{roster: roster, assistant: assistant, logger: logger}

	router := gin.New()
	router.MaxMultipartMemory = maxUploadSize
	router.Use(gin.Recovery(), server.logRequests())

	api := router.Group("/api")
	api.GET("/stats", server.getStats)

	api.GET("/employees", server.listEmployees)
	api.POST("/employees", server.createEmployee)

	api.GET("/projects", server.listProjects)
	api.POST("/projects", server.createProject)
	api.POST("/projects/template", server.projectTemplate)
	api.GET("/projects/:id/matches", server.projectMatches)
	api.GET("/projects/:id/export", server.exportMatches)
	api.POST("/projects/:id/report", server.projectReport)

	api.POST("/preview", server.preview)
	api.POST("/resume", server.extractResume)

	server.router = router
	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Run listens on address until ctx is cancelled, then shuts down gracefully.
func (server *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		server.logger.Info("dashboard api listening", zap.String("address", address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	server.logger.Info("shutting down dashboard api")
	return srv.Shutdown(shutdownCtx)
}

func (server *Server) logRequests() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		server.logger.Debug("http request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
