package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/export"
	"github.com/spigell/staffmatch/internal/filtering"
	"github.com/spigell/staffmatch/internal/logger"
	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
)

var (
	errProjectNotFound  = errors.New("project not found")
	errNothingExtracted = errors.New("could not extract candidate details from the resume")
	errNoTemplate       = errors.New("could not generate a project template")
)

type projectURI struct {
	ID string `uri:"id" binding:"required"`
}

type matchesQuery struct {
	Limit         int  `form:"limit" binding:"omitempty,min=0"`
	MinScore      int  `form:"minScore" binding:"omitempty,min=0,max=100"`
	AvailableOnly bool `form:"available"`
}

type previewRequest struct {
	Name      string      `json:"name"`
	Skills    []string    `json:"skills"`
	Level     staff.Level `json:"level"`
	Available bool        `json:"available"`
}

type templateRequest struct {
	Name string `json:"name" binding:"required"`
}

type reportResponse struct {
	ProjectID string `json:"projectId"`
	Report    string `json:"report"`
	AIEnabled bool   `json:"aiEnabled"`
}

func (server *Server) getStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, server.roster.Stats())
}

func (server *Server) listEmployees(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, server.roster.Employees())
}

func (server *Server) createEmployee(ctx *gin.Context) {
	var req staff.Employee
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	employee, err := server.roster.AddEmployee(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	server.logger.Info("employee added", zap.String(logger.FieldEmployeeID, employee.ID))
	ctx.JSON(http.StatusCreated, employee)
}

func (server *Server) listProjects(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, server.roster.Projects())
}

func (server *Server) createProject(ctx *gin.Context) {
	var req staff.Project
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	project, err := server.roster.AddProject(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	server.logger.Info("project added", logger.ProjectFields(project.ID, project.Name)...)
	ctx.JSON(http.StatusCreated, project)
}

func (server *Server) projectMatches(ctx *gin.Context) {
	project, ok := server.bindProject(ctx)
	if !ok {
		return
	}

	var query matchesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	filters := filtering.New([]filtering.Filter{
		filtering.NewAvailableOnly(query.AvailableOnly),
		filtering.NewMinScore(query.MinScore),
		filtering.NewLimit(query.Limit),
	}, server.logger)

	results, err := filters.RunFilters(ctx.Request.Context(), matching.Rank(project, server.roster.Employees()))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, results)
}

func (server *Server) exportMatches(ctx *gin.Context) {
	project, ok := server.bindProject(ctx)
	if !ok {
		return
	}

	results := matching.Rank(project, server.roster.Employees())

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFileName(project.ID)))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Status(http.StatusOK)

	if err := export.WriteCSV(ctx.Writer, results); err != nil {
		server.logger.Error("csv export failed", append(logger.ProjectFields(project.ID, project.Name), zap.Error(err))...)
	}
}

func (server *Server) projectReport(ctx *gin.Context) {
	project, ok := server.bindProject(ctx)
	if !ok {
		return
	}

	results := matching.Rank(project, server.roster.Employees())
	report := server.assistant.Report(ctx.Request.Context(), project, results)

	ctx.JSON(http.StatusOK, reportResponse{
		ProjectID: project.ID,
		Report:    report,
		AIEnabled: server.assistant.Enabled(),
	})
}

func (server *Server) preview(ctx *gin.Context) {
	var req previewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.Level == 0 {
		req.Level = staff.Junior
	}

	candidate := staff.Employee{
		ID:        "preview",
		Name:      req.Name,
		Skills:    req.Skills,
		Level:     req.Level,
		Available: req.Available,
	}

	ctx.JSON(http.StatusOK, matching.Suggest(candidate, server.roster.Projects(), matching.PreviewSuggestions))
}

func (server *Server) extractResume(ctx *gin.Context) {
	header, err := ctx.FormFile("resume")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if header.Size > maxUploadSize {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("resume exceeds %d bytes", maxUploadSize)))
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	doc, err := ai.NewDocument(header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	profile := server.assistant.Resume(ctx.Request.Context(), doc)
	if profile == nil {
		ctx.JSON(http.StatusUnprocessableEntity, errorResponse(errNothingExtracted))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (server *Server) projectTemplate(ctx *gin.Context) {
	var req templateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	tpl := server.assistant.Template(ctx.Request.Context(), req.Name)
	if tpl == nil {
		ctx.JSON(http.StatusUnprocessableEntity, errorResponse(errNoTemplate))
		return
	}

	ctx.JSON(http.StatusOK, tpl)
}

// bindProject resolves the :id path parameter, writing the error response itself.
func (server *Server) bindProject(ctx *gin.Context) (staff.Project, bool) {
	var uri projectURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return staff.Project{}, false
	}

	project, ok := server.roster.Project(uri.ID)
	if !ok {
		ctx.JSON(http.StatusNotFound, errorResponse(errProjectNotFound))
		return staff.Project{}, false
	}

	return project, true
}
