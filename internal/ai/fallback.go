package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
)

// ReportCandidates is the number of top results a report discusses.
const ReportCandidates = 3

const (
	MsgNotConfigured = "API Key not configured. Please add your Gemini API Key to environment variables."
	MsgReportFailed  = "Failed to generate AI report due to an API error."
	MsgNoReport      = "No report generated."
)

// Fallback applies the failure policy around an optional Assistant. Callers
// always get a usable value: a report text, or nil for resume and template
// lookups that produced nothing.
type Fallback struct {
	assistant Assistant
	logger    *zap.Logger
}

// NewFallback wraps assistant, which may be nil when no API key is configured.
func NewFallback(assistant Assistant, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{assistant: assistant, logger: logger}
}

func (f *Fallback) Enabled() bool {
	return f != nil && f.assistant != nil
}

// Report returns a narrative for the top results of project.
func (f *Fallback) Report(ctx context.Context, project staff.Project, results []matching.Result) string {
	if !f.Enabled() {
		return MsgNotConfigured
	}

	top := matching.Top(results, ReportCandidates)
	report, err := f.assistant.GenerateReport(ctx, project, top)
	if err != nil {
		f.logger.Error("ai report failed",
			zap.String("project_id", project.ID),
			zap.Int("candidates", len(top)),
			zap.Error(err),
		)
		return MsgReportFailed
	}

	report = strings.TrimSpace(report)
	if report == "" {
		return MsgNoReport
	}

	return report
}

// Resume extracts a profile from doc, or returns nil when nothing was found.
func (f *Fallback) Resume(ctx context.Context, doc Document) *ResumeProfile {
	if !f.Enabled() {
		return nil
	}

	if !doc.IsInline() && strings.TrimSpace(doc.Text) == "" {
		return nil
	}

	profile, err := f.assistant.ExtractFromResume(ctx, doc)
	if err != nil {
		f.logger.Error("ai resume analysis failed",
			zap.String("document", doc.Name),
			zap.String("mime_type", doc.MIMEType),
			zap.Error(err),
		)
		return nil
	}

	if profile.Empty() {
		return nil
	}

	return profile
}

// Template suggests project details for name, or returns nil.
func (f *Fallback) Template(ctx context.Context, name string) *ProjectTemplate {
	if !f.Enabled() {
		return nil
	}

	tpl, err := f.assistant.GenerateProjectTemplate(ctx, name)
	if err != nil {
		f.logger.Error("ai project template failed", zap.String("name", name), zap.Error(err))
		return nil
	}

	if tpl.Empty() {
		return nil
	}

	return tpl
}

// ApplyResume merges profile into an employee draft. Name and level are only
// overwritten when extracted; skills are always replaced.
func ApplyResume(form staff.Employee, profile *ResumeProfile) staff.Employee {
	if profile == nil {
		return form
	}

	if profile.Name != "" {
		form.Name = profile.Name
	}
	if profile.Level.Valid() {
		form.Level = profile.Level
	}
	form.Skills = append([]string(nil), profile.Skills...)

	return form
}

// ApplyTemplate merges tpl into a project draft using the same rules as ApplyResume.
func ApplyTemplate(form staff.Project, tpl *ProjectTemplate) staff.Project {
	if tpl == nil {
		return form
	}

	if tpl.Description != "" {
		form.Description = tpl.Description
	}
	if tpl.RequiredLevel.Valid() {
		form.RequiredLevel = tpl.RequiredLevel
	}
	form.RequiredSkills = append([]string(nil), tpl.RequiredSkills...)

	return form
}
