// Package matching scores employees against a project with a weighted sum of
// skill overlap, experience level and availability, and ranks the results.
package matching

import (
	"math"

	"github.com/spigell/staffmatch/internal/staff"
)

const (
	SkillWeight        = 50
	ExperienceWeight   = 30
	PartialExperience  = 15
	AvailabilityWeight = 20
)

type Breakdown struct {
	SkillScore        float64 `json:"skillScore"`
	ExperienceScore   int     `json:"experienceScore"`
	AvailabilityScore int     `json:"availabilityScore"`
}

// Result is derived on demand and never stored on its own.
type Result struct {
	Employee      staff.Employee `json:"employee"`
	ProjectID     string         `json:"projectId"`
	TotalScore    int            `json:"totalScore"`
	Breakdown     Breakdown      `json:"breakdown"`
	MatchedSkills []string       `json:"matchedSkills"`
}

// Score computes the match of one employee against one project.
// Both records are expected to have passed staff validation.
func Score(e staff.Employee, p staff.Project) Result {
	skillScore, matched := skillScore(e.Skills, p.RequiredSkills)
	experienceScore := experienceScore(e.Level, p.RequiredLevel)
	availabilityScore := 0
	if e.Available {
		availabilityScore = AvailabilityWeight
	}

	total := math.Round(skillScore + float64(experienceScore) + float64(availabilityScore))

	return Result{
		Employee:   e.Clone(),
		ProjectID:  p.ID,
		TotalScore: int(total),
		Breakdown: Breakdown{
			SkillScore:        skillScore,
			ExperienceScore:   experienceScore,
			AvailabilityScore: availabilityScore,
		},
		MatchedSkills: matched,
	}
}

// skillScore returns the employee's skills found among the required ones, in the
// employee's order. Repeated employee skills stay in the list but count once.
// No requirements means no skill credit.
func skillScore(skills, required []string) (float64, []string) {
	requiredSet := make(map[string]struct{}, len(required))
	for _, skill := range required {
		requiredSet[skill] = struct{}{}
	}

	matched := make([]string, 0, len(skills))
	counted := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		if _, ok := requiredSet[skill]; !ok {
			continue
		}
		matched = append(matched, skill)
		counted[skill] = struct{}{}
	}

	if len(requiredSet) == 0 {
		return 0, matched
	}

	ratio := float64(len(counted)) / float64(len(requiredSet))
	return ratio * SkillWeight, matched
}

// experienceScore gives full credit at or above the required level and partial
// credit exactly one tier below. Two or more tiers below earn nothing.
func experienceScore(have, want staff.Level) int {
	switch {
	case have >= want:
		return ExperienceWeight
	case have == want-1:
		return PartialExperience
	default:
		return 0
	}
}
