package matching

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/staffmatch/internal/generator"
	"github.com/spigell/staffmatch/internal/staff"
)

func project(skills []string, level staff.Level) staff.Project {
	return staff.Project{ID: "PRJ001", Name: "Website Redesign", RequiredSkills: skills, RequiredLevel: level}
}

func employee(id string, skills []string, level staff.Level, available bool) staff.Employee {
	return staff.Employee{ID: id, Name: "Employee " + id, Skills: skills, Level: level, Available: available}
}

func TestScoreSeniorPartialSkills(t *testing.T) {
	p := project([]string{"React", "AWS"}, staff.Mid)
	e := employee("E1", []string{"React", "Docker"}, staff.Senior, true)

	got := Score(e, p)

	assert.Equal(t, 25.0, got.Breakdown.SkillScore)
	assert.Equal(t, 30, got.Breakdown.ExperienceScore)
	assert.Equal(t, 20, got.Breakdown.AvailabilityScore)
	assert.Equal(t, 75, got.TotalScore)
	assert.Equal(t, []string{"React"}, got.MatchedSkills)
	assert.Equal(t, "PRJ001", got.ProjectID)
	assert.Equal(t, "E1", got.Employee.ID)
}

func TestScoreJuniorOneTierBelow(t *testing.T) {
	p := project([]string{"React", "AWS"}, staff.Mid)
	e := employee("E2", nil, staff.Junior, false)

	got := Score(e, p)

	assert.Equal(t, 0.0, got.Breakdown.SkillScore)
	assert.Equal(t, 15, got.Breakdown.ExperienceScore)
	assert.Equal(t, 0, got.Breakdown.AvailabilityScore)
	assert.Equal(t, 15, got.TotalScore)
	assert.Empty(t, got.MatchedSkills)
}

func TestScoreNoRequiredSkillsGivesNoSkillCredit(t *testing.T) {
	for _, skills := range [][]string{nil, {}, {"React"}, {"React", "AWS", "Go"}} {
		got := Score(employee("E1", skills, staff.Senior, true), project(nil, staff.Junior))
		assert.Zero(t, got.Breakdown.SkillScore)
		assert.Equal(t, 50, got.TotalScore)
	}
}

func TestScoreSupersetGetsFullSkillCredit(t *testing.T) {
	p := project([]string{"Python", "SQL", "AWS"}, staff.Senior)
	e := employee("E1", []string{"AWS", "Docker", "SQL", "Python"}, staff.Junior, false)

	got := Score(e, p)

	assert.Equal(t, 50.0, got.Breakdown.SkillScore)
	assert.Equal(t, 0, got.Breakdown.ExperienceScore)
	assert.Equal(t, []string{"AWS", "SQL", "Python"}, got.MatchedSkills, "matched skills follow the employee order")
	assert.Equal(t, 50, got.TotalScore)
}

func TestScoreSkillsAreCaseSensitive(t *testing.T) {
	got := Score(employee("E1", []string{"react"}, staff.Mid, false), project([]string{"React"}, staff.Mid))
	assert.Zero(t, got.Breakdown.SkillScore)
	assert.Empty(t, got.MatchedSkills)
}

func TestScoreDuplicateSkills(t *testing.T) {
	p := project([]string{"React", "React", "AWS"}, staff.Mid)
	e := employee("E1", []string{"React", "React"}, staff.Mid, false)

	got := Score(e, p)

	assert.Equal(t, 25.0, got.Breakdown.SkillScore, "required duplicates collapse, employee duplicates count once")
	assert.Equal(t, []string{"React", "React"}, got.MatchedSkills)
}

func TestScoreRounding(t *testing.T) {
	p := project([]string{"Python", "SQL", "AWS"}, staff.Mid)

	one := Score(employee("E1", []string{"SQL"}, staff.Mid, false), p)
	assert.InDelta(t, 50.0/3, one.Breakdown.SkillScore, 1e-9)
	assert.Equal(t, 47, one.TotalScore)

	two := Score(employee("E2", []string{"SQL", "AWS"}, staff.Mid, false), p)
	assert.Equal(t, 63, two.TotalScore)

	half := Score(employee("E3", []string{"A"}, staff.Junior, false), project([]string{"A", "B", "C", "D"}, staff.Senior))
	assert.Equal(t, 12.5, half.Breakdown.SkillScore)
	assert.Equal(t, 13, half.TotalScore, "halves round away from zero")
}

func TestExperienceScoreLadder(t *testing.T) {
	for _, have := range staff.Levels() {
		for _, want := range staff.Levels() {
			got := Score(employee("E1", nil, have, false), project(nil, want)).Breakdown.ExperienceScore

			switch {
			case have >= want:
				assert.Equal(t, 30, got, "%s vs %s", have, want)
			case have == want-1:
				assert.Equal(t, 15, got, "%s vs %s", have, want)
			default:
				assert.Equal(t, 0, got, "%s vs %s", have, want)
			}
		}
	}
}

func TestScoreAvailability(t *testing.T) {
	p := project(nil, staff.Junior)
	assert.Equal(t, 20, Score(employee("E1", nil, staff.Junior, true), p).Breakdown.AvailabilityScore)
	assert.Equal(t, 0, Score(employee("E1", nil, staff.Junior, false), p).Breakdown.AvailabilityScore)
}

func TestScoreDoesNotAliasEmployee(t *testing.T) {
	e := employee("E1", []string{"React"}, staff.Mid, true)
	got := Score(e, project([]string{"React"}, staff.Mid))

	got.Employee.Skills[0] = "Vue"
	assert.Equal(t, "React", e.Skills[0])
}

func TestScoreInvariantsOnGeneratedData(t *testing.T) {
	gen := generator.New(rand.New(rand.NewSource(42)))
	employees := gen.Employees(200)
	projects := gen.Projects(20)

	for _, p := range projects {
		for _, e := range employees {
			got := Score(e, p)
			b := got.Breakdown

			require.GreaterOrEqual(t, got.TotalScore, 0)
			require.LessOrEqual(t, got.TotalScore, 100)
			require.GreaterOrEqual(t, b.SkillScore, 0.0)
			require.LessOrEqual(t, b.SkillScore, 50.0)
			require.Contains(t, []int{0, 15, 30}, b.ExperienceScore)
			require.Contains(t, []int{0, 20}, b.AvailabilityScore)
			require.Equal(t, int(math.Round(b.SkillScore+float64(b.ExperienceScore)+float64(b.AvailabilityScore))), got.TotalScore)
		}
	}
}
