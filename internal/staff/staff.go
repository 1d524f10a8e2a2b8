// Package staff holds the employee and project records consumed by the matching core.
// Records are validated once, at construction, so scoring can stay total over its inputs.
package staff

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const avatarURLTemplate = "https://picsum.photos/seed/%s/64/64"

type Employee struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Skills    []string `json:"skills" validate:"dive,required"`
	Level     Level    `json:"level" validate:"level"`
	Available bool     `json:"available"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
}

type Project struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills" validate:"dive,required"`
	RequiredLevel  Level    `json:"requiredLevel" validate:"level"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		level, ok := fl.Field().Interface().(Level)
		return ok && level.Valid()
	})
	return v
}

// NewEmployee normalises the provided record and validates it.
// The returned employee does not share its skills slice with the input.
func NewEmployee(e Employee) (Employee, error) {
	e.ID = strings.TrimSpace(e.ID)
	e.Name = strings.TrimSpace(e.Name)
	e.Skills = trimAll(e.Skills)
	e.AvatarURL = strings.TrimSpace(e.AvatarURL)

	if err := e.Validate(); err != nil {
		return Employee{}, err
	}

	return e, nil
}

// NewProject normalises the provided record and validates it.
func NewProject(p Project) (Project, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.RequiredSkills = trimAll(p.RequiredSkills)

	if err := p.Validate(); err != nil {
		return Project{}, err
	}

	return p, nil
}

func (e Employee) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid employee %q: %w", e.ID, describe(err))
	}
	return nil
}

func (p Project) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid project %q: %w", p.ID, describe(err))
	}
	return nil
}

// Clone returns a copy that does not share the skills slice.
func (e Employee) Clone() Employee {
	e.Skills = slices.Clone(e.Skills)
	return e
}

// Clone returns a copy that does not share the required skills slice.
func (p Project) Clone() Project {
	p.RequiredSkills = slices.Clone(p.RequiredSkills)
	return p
}

// DefaultAvatarURL returns the placeholder avatar used when none is supplied.
func DefaultAvatarURL(id string) string {
	return fmt.Sprintf(avatarURLTemplate, id)
}

// NewEmployeeID returns an identifier for a manually added employee.
func NewEmployeeID() string {
	return "EMP-" + shortUUID()
}

// NewProjectID returns an identifier for a manually added project.
func NewProjectID() string {
	return "PRJ-" + shortUUID()
}

func shortUUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// ParseSkills splits a comma separated list of skills, dropping blank entries.
func ParseSkills(s string) []string {
	skills := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		skills = append(skills, part)
	}
	return skills
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	return trimmed
}

// describe flattens validator errors into a single readable message.
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	invalidLevel := false
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "level":
			invalidLevel = true
			msgs = append(msgs, fmt.Sprintf("%s is not one of Junior, Mid, Senior", fe.Field()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}

	msg := strings.Join(msgs, "; ")
	if invalidLevel {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, msg)
	}
	return errors.New(msg)
}
