package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
	"github.com/spigell/staffmatch/internal/utils"
)

const (
	DefaultMaxLogLength = 200

	resumeInstruction   = "Extract the candidate's full name, experience level (Junior, Mid, or Senior), and a list of technical skills from this resume. Return as JSON."
	templateInstruction = "Provide realistic project details for a corporate project titled %q. Return the result in JSON format."
	levelDescription    = "Must be 'Junior', 'Mid', or 'Senior'."
)

//go:embed report_prompt.md
var reportTemplate string

var (
	resumeSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":   {Type: genai.TypeString},
			"level":  {Type: genai.TypeString, Description: levelDescription},
			"skills": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"name", "level", "skills"},
	}

	templateSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString, Description: "A professional 2-sentence description of the project."},
			"requiredSkills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 3-5 technical skills required.",
			},
			"requiredLevel": {Type: genai.TypeString, Description: levelDescription},
		},
		Required: []string{"description", "requiredSkills", "requiredLevel"},
	}
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...*genai.Part) (string, error)
	GenerateJSON(ctx context.Context, schema *genai.Schema, parts ...*genai.Part) (string, error)
}

// Assistant implements ai.Assistant on top of a Gemini content generator.
type Assistant struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Assistant = (*Assistant)(nil)

func NewAssistant(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = DefaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assistant{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// GenerateReport writes a markdown summary that justifies the top candidates.
func (a *Assistant) GenerateReport(ctx context.Context, project staff.Project, top []matching.Result) (string, error) {
	top = matching.Top(top, ai.ReportCandidates)
	prompt := buildReportPrompt(project, top)

	a.logRequest("report", prompt, zap.String("project_id", project.ID))

	raw, err := a.generator.GenerateContent(ctx, genai.NewPartFromText(prompt))
	if err != nil {
		return "", err
	}

	a.logResponse("report", raw)
	return raw, nil
}

// ExtractFromResume reads name, level and skills out of doc.
func (a *Assistant) ExtractFromResume(ctx context.Context, doc ai.Document) (*ai.ResumeProfile, error) {
	parts := []*genai.Part{genai.NewPartFromText(resumeInstruction)}

	switch {
	case doc.IsInline():
		parts = append(parts, genai.NewPartFromBytes(doc.Data, doc.MIMEType))
	case strings.TrimSpace(doc.Text) != "":
		parts = append(parts, genai.NewPartFromText(doc.Text))
	default:
		return nil, ai.ErrEmptyDocument
	}

	a.logRequest("resume", resumeInstruction, zap.String("document", doc.Name), zap.String("mime_type", doc.MIMEType))

	raw, err := a.generator.GenerateJSON(ctx, resumeSchema, parts...)
	if err != nil {
		return nil, err
	}

	a.logResponse("resume", raw)

	data, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	return ai.DecodeResumeProfile(data)
}

// GenerateProjectTemplate suggests a description, skills and level for a project name.
func (a *Assistant) GenerateProjectTemplate(ctx context.Context, name string) (*ai.ProjectTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("project name is required")
	}

	prompt := fmt.Sprintf(templateInstruction, name)
	a.logRequest("template", prompt)

	raw, err := a.generator.GenerateJSON(ctx, templateSchema, genai.NewPartFromText(prompt))
	if err != nil {
		return nil, err
	}

	a.logResponse("template", raw)

	data, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	return ai.DecodeProjectTemplate(data)
}

func (a *Assistant) logRequest(kind, prompt string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)
	a.logger.Debug("gemini generate content request", fields...)
}

func (a *Assistant) logResponse(kind, raw string) {
	a.logger.Debug("gemini generate content response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)
}

func buildReportPrompt(project staff.Project, top []matching.Result) string {
	var candidates strings.Builder
	for i, r := range top {
		if i > 0 {
			candidates.WriteString("\n")
		}
		fmt.Fprintf(&candidates, "%d. %s (%s)\n", i+1, r.Employee.Name, r.Employee.Level)
		fmt.Fprintf(&candidates, "   - Score: %d/100\n", r.TotalScore)
		fmt.Fprintf(&candidates, "   - Matched Skills: %s\n", strings.Join(r.MatchedSkills, ", "))
		fmt.Fprintf(&candidates, "   - Available: %t\n", r.Employee.Available)
	}

	replacer := strings.NewReplacer(
		"{{CANDIDATE_COUNT}}", fmt.Sprint(ai.ReportCandidates),
		"{{PROJECT_NAME}}", project.Name,
		"{{REQUIRED_SKILLS}}", strings.Join(project.RequiredSkills, ", "),
		"{{REQUIRED_LEVEL}}", project.RequiredLevel.String(),
		"{{CANDIDATES}}", strings.TrimRight(candidates.String(), "\n"),
	)

	return replacer.Replace(reportTemplate)
}

func parseObject(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	return data, nil
}

// extractJSON strips markdown code fences the model sometimes wraps JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
