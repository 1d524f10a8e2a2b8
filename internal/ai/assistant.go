// Package ai describes the optional AI collaborator used for reports, resume
// parsing and project templates, together with the policy applied when it is
// missing or failing.
package ai

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
)

var (
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrEmptyDocument       = errors.New("document is empty")
)

// inlineTypes are sent to the model as binary parts.
var inlineTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"application/pdf": {},
}

// Document is an uploaded resume. Exactly one of Data or Text is set.
type Document struct {
	Name     string
	Data     []byte
	MIMEType string
	Text     string
}

// ResumeProfile is what the assistant could read out of a resume.
// Level is zero when the model returned something unrecognised.
type ResumeProfile struct {
	Name   string      `json:"name" mapstructure:"name"`
	Level  staff.Level `json:"level,omitempty" mapstructure:"level"`
	Skills []string    `json:"skills" mapstructure:"skills"`
}

// Empty reports whether nothing usable was extracted.
func (p *ResumeProfile) Empty() bool {
	return p == nil || (p.Name == "" && !p.Level.Valid() && len(p.Skills) == 0)
}

type ProjectTemplate struct {
	Description    string      `json:"description" mapstructure:"description"`
	RequiredSkills []string    `json:"requiredSkills" mapstructure:"requiredSkills"`
	RequiredLevel  staff.Level `json:"requiredLevel,omitempty" mapstructure:"requiredLevel"`
}

// Empty reports whether the template carries no usable field.
func (t *ProjectTemplate) Empty() bool {
	return t == nil || (t.Description == "" && !t.RequiredLevel.Valid() && len(t.RequiredSkills) == 0)
}

type Assistant interface {
	GenerateReport(ctx context.Context, project staff.Project, top []matching.Result) (string, error)
	ExtractFromResume(ctx context.Context, doc Document) (*ResumeProfile, error)
	GenerateProjectTemplate(ctx context.Context, name string) (*ProjectTemplate, error)
}

// NewDocument classifies data by its MIME type. When mimeType is empty the
// type is sniffed from the content.
func NewDocument(name string, data []byte, mimeType string) (Document, error) {
	if len(data) == 0 {
		return Document{}, ErrEmptyDocument
	}

	if strings.TrimSpace(mimeType) == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedDocument, mimeType)
	}

	doc := Document{Name: name, MIMEType: mediaType}

	switch {
	case isInline(mediaType):
		doc.Data = data
	case strings.HasPrefix(mediaType, "text/"):
		doc.Text = strings.TrimSpace(string(data))
		if doc.Text == "" {
			return Document{}, ErrEmptyDocument
		}
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedDocument, mediaType)
	}

	return doc, nil
}

// DocumentFromFile reads path and detects its type from the extension,
// falling back to content sniffing.
func DocumentFromFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading resume %q: %w", path, err)
	}

	return NewDocument(filepath.Base(path), data, mime.TypeByExtension(filepath.Ext(path)))
}

// IsInline reports whether the document is sent as a binary part.
func (d Document) IsInline() bool {
	return len(d.Data) > 0
}

func isInline(mediaType string) bool {
	_, ok := inlineTypes[mediaType]
	return ok
}
