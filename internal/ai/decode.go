package ai

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/staffmatch/internal/staff"
)

var levelType = reflect.TypeOf(staff.Level(0))

// DecodeResumeProfile converts the loosely typed JSON object returned by a
// model into a ResumeProfile.
func DecodeResumeProfile(raw map[string]any) (*ResumeProfile, error) {
	var profile ResumeProfile
	if err := decode(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode resume profile: %w", err)
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Skills = cleanSkills(profile.Skills)

	return &profile, nil
}

// DecodeProjectTemplate converts the loosely typed JSON object returned by a
// model into a ProjectTemplate.
func DecodeProjectTemplate(raw map[string]any) (*ProjectTemplate, error) {
	var tpl ProjectTemplate
	if err := decode(raw, &tpl); err != nil {
		return nil, fmt.Errorf("decode project template: %w", err)
	}

	tpl.Description = strings.TrimSpace(tpl.Description)
	tpl.RequiredSkills = cleanSkills(tpl.RequiredSkills)

	return &tpl, nil
}

func decode(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			levelHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(raw)
}

// levelHook maps level names onto staff.Level. Unknown names decode to the
// zero level instead of failing the whole object.
func levelHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != levelType || from.Kind() != reflect.String {
		return data, nil
	}

	name, ok := data.(string)
	if !ok {
		return data, nil
	}

	level, err := staff.ParseLevel(name)
	if err != nil {
		return staff.Level(0), nil
	}

	return level, nil
}

func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		cleaned = append(cleaned, skill)
	}
	return cleaned
}
