package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssistant struct {
	report   string
	profile  *ai.ResumeProfile
	template *ai.ProjectTemplate
	err      error

	lastDoc ai.Document
	lastTop []matching.Result
}

func (s *stubAssistant) GenerateReport(_ context.Context, _ staff.Project, top []matching.Result) (string, error) {
	s.lastTop = top
	return s.report, s.err
}

func (s *stubAssistant) ExtractFromResume(_ context.Context, doc ai.Document) (*ai.ResumeProfile, error) {
	s.lastDoc = doc
	return s.profile, s.err
}

func (s *stubAssistant) GenerateProjectTemplate(context.Context, string) (*ai.ProjectTemplate, error) {
	return s.template, s.err
}

func testDataset() *staff.Dataset {
	return &staff.Dataset{
		Employees: staff.Employees{
			{ID: "EMP001", Name: "Alice", Skills: []string{"React", "Docker"}, Level: staff.Senior, Available: true},
			{ID: "EMP002", Name: "Bob", Skills: []string{}, Level: staff.Junior, Available: false},
			{ID: "EMP003", Name: "Carol", Skills: []string{"React", "AWS"}, Level: staff.Mid, Available: true},
		},
		Projects: staff.Projects{
			{ID: "PRJ001", Name: "Website Redesign", RequiredSkills: []string{"React", "AWS"}, RequiredLevel: staff.Mid},
			{ID: "PRJ002", Name: "Migration to Cloud", RequiredSkills: []string{"AWS", "Docker"}, RequiredLevel: staff.Senior},
		},
	}
}

func newTestServer(assistant ai.Assistant) *Server {
	return New(staff.NewRoster(testDataset()), ai.NewFallback(assistant, zap.NewNop()), zap.NewNop())
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestStats(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/api/stats", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, staff.Stats{Employees: 3, Projects: 2, Available: 2}, decode[staff.Stats](t, rec))
}

func TestCreateEmployee(t *testing.T) {
	s := newTestServer(nil)

	rec := do(t, s, http.MethodPost, "/api/employees", map[string]any{
		"name":      "Dana",
		"skills":    []string{"Go"},
		"level":     "Senior",
		"available": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[staff.Employee](t, rec)
	assert.True(t, strings.HasPrefix(created.ID, "EMP-"))
	assert.Equal(t, staff.DefaultAvatarURL(created.ID), created.AvatarURL)

	list := decode[[]staff.Employee](t, do(t, s, http.MethodGet, "/api/employees", nil))
	assert.Len(t, list, 4)
}

func TestCreateEmployeeRejectsInvalid(t *testing.T) {
	s := newTestServer(nil)

	tests := []struct {
		name string
		body any
	}{
		{name: "unknown level", body: map[string]any{"name": "Dana", "level": "Principal"}},
		{name: "missing name", body: map[string]any{"level": "Mid"}},
		{name: "duplicate id", body: map[string]any{"id": "EMP001", "name": "Dana", "level": "Mid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/employees", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestCreateProject(t *testing.T) {
	s := newTestServer(nil)

	rec := do(t, s, http.MethodPost, "/api/projects", map[string]any{
		"name":           "Data Lake",
		"requiredSkills": []string{"SQL"},
		"requiredLevel":  "Mid",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(decode[staff.Project](t, rec).ID, "PRJ-"))

	assert.Len(t, decode[[]staff.Project](t, do(t, s, http.MethodGet, "/api/projects", nil)), 3)
}

func TestProjectMatches(t *testing.T) {
	s := newTestServer(nil)

	rec := do(t, s, http.MethodGet, "/api/projects/PRJ001/matches", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	results := decode[[]matching.Result](t, rec)
	require.Len(t, results, 3)
	assert.Equal(t, "EMP003", results[0].Employee.ID)
	assert.Equal(t, 100, results[0].TotalScore)
	assert.Equal(t, 75, results[1].TotalScore)
	assert.Equal(t, 15, results[2].TotalScore)

	limited := decode[[]matching.Result](t, do(t, s, http.MethodGet, "/api/projects/PRJ001/matches?limit=1", nil))
	assert.Len(t, limited, 1)

	filtered := decode[[]matching.Result](t, do(t, s, http.MethodGet, "/api/projects/PRJ001/matches?available=true&minScore=80", nil))
	require.Len(t, filtered, 1)
	assert.Equal(t, "EMP003", filtered[0].Employee.ID)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/projects/PRJ001/matches?limit=-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/projects/PRJ001/matches?minScore=101", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/projects/PRJ404/matches", nil).Code)
}

func TestExportMatches(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/api/projects/PRJ001/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Disposition"), "matching_results_PRJ001.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Employee Name", rows[0][0])
	assert.Equal(t, []string{"Carol", "EMP003", "100", "50.00", "30", "20", "React; AWS"}, rows[1])
}

func TestProjectReport(t *testing.T) {
	stub := &stubAssistant{report: "## Summary"}
	rec := do(t, newTestServer(stub), http.MethodPost, "/api/projects/PRJ001/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[reportResponse](t, rec)
	assert.Equal(t, "## Summary", resp.Report)
	assert.True(t, resp.AIEnabled)
	assert.Len(t, stub.lastTop, ai.ReportCandidates)
}

func TestProjectReportFallbacks(t *testing.T) {
	resp := decode[reportResponse](t, do(t, newTestServer(nil), http.MethodPost, "/api/projects/PRJ001/report", nil))
	assert.Equal(t, ai.MsgNotConfigured, resp.Report)
	assert.False(t, resp.AIEnabled)

	resp = decode[reportResponse](t, do(t, newTestServer(&stubAssistant{err: errors.New("quota")}), http.MethodPost, "/api/projects/PRJ001/report", nil))
	assert.Equal(t, ai.MsgReportFailed, resp.Report)
}

func TestPreview(t *testing.T) {
	s := newTestServer(nil)

	rec := do(t, s, http.MethodPost, "/api/preview", map[string]any{
		"skills":    []string{"AWS", "Docker"},
		"level":     "Senior",
		"available": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	results := decode[[]matching.Result](t, rec)
	require.Len(t, results, matching.PreviewSuggestions)
	assert.Equal(t, "PRJ002", results[0].ProjectID)
	assert.Equal(t, 100, results[0].TotalScore)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/preview", map[string]any{"level": "Guru"}).Code)
}

func multipartResume(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestExtractResume(t *testing.T) {
	stub := &stubAssistant{profile: &ai.ResumeProfile{Name: "Jane Doe", Level: staff.Senior, Skills: []string{"Go"}}}
	s := newTestServer(stub)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, multipartResume(t, "cv.pdf", "application/pdf", []byte("%PDF-1.7")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decode[ai.ResumeProfile](t, rec)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, staff.Senior, profile.Level)
	assert.Equal(t, "application/pdf", stub.lastDoc.MIMEType)
	assert.True(t, stub.lastDoc.IsInline())
}

func TestExtractResumeFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).Handler().ServeHTTP(rec, multipartResume(t, "cv.txt", "text/plain", []byte("Jane Doe")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	newTestServer(&stubAssistant{}).Handler().ServeHTTP(rec, multipartResume(t, "cv.zip", "application/zip", []byte("PK\x03\x04")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, newTestServer(&stubAssistant{}), http.MethodPost, "/api/resume", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectTemplate(t *testing.T) {
	tpl := &ai.ProjectTemplate{Description: "Centralise analytics.", RequiredSkills: []string{"SQL"}, RequiredLevel: staff.Mid}
	s := newTestServer(&stubAssistant{template: tpl})

	rec := do(t, s, http.MethodPost, "/api/projects/template", map[string]string{"name": "Data Lake"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, *tpl, decode[ai.ProjectTemplate](t, rec))

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/projects/template", map[string]string{}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		do(t, newTestServer(nil), http.MethodPost, "/api/projects/template", map[string]string{"name": "Data Lake"}).Code)
}
