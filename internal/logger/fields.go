package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/matching"
)

// Field keys shared by every command and the API server.
const (
	FieldProvider    = "ai_provider"
	FieldModel       = "ai_model"
	FieldProjectID   = "project_id"
	FieldProjectName = "project_name"
	FieldEmployeeID  = "employee_id"
)

// pairs turns key/value pairs into zap string fields. Blank keys or values
// are dropped so missing details do not clutter entries.
func pairs(kv ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, value := strings.TrimSpace(kv[i]), strings.TrimSpace(kv[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the AI provider and model.
func CommonFields(provider, model string) []zap.Field {
	return pairs(FieldProvider, provider, FieldModel, model)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// ProjectFields identifies the project a ranking was computed for.
func ProjectFields(id, name string) []zap.Field {
	return pairs(FieldProjectID, id, FieldProjectName, name)
}

// ResultFields flattens one ranked result, rank starting at 1.
func ResultFields(rank int, r matching.Result) []zap.Field {
	return append(pairs(FieldEmployeeID, r.Employee.ID, "name", r.Employee.Name),
		zap.Int("rank", rank),
		zap.Stringer("level", r.Employee.Level),
		zap.Bool("available", r.Employee.Available),
		zap.Int("total_score", r.TotalScore),
		zap.Float64("skill_score", r.Breakdown.SkillScore),
		zap.Int("experience_score", r.Breakdown.ExperienceScore),
		zap.Int("availability_score", r.Breakdown.AvailabilityScore),
		zap.Strings("matched_skills", r.MatchedSkills),
	)
}
