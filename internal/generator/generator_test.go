package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployees(t *testing.T) {
	employees := New(rand.New(rand.NewSource(3))).Employees(DefaultEmployees)

	require.Len(t, employees, DefaultEmployees)
	assert.Equal(t, "EMP001", employees[0].ID)
	assert.Equal(t, "EMP020", employees[19].ID)

	for _, e := range employees {
		require.NoError(t, e.Validate())
		assert.GreaterOrEqual(t, len(e.Skills), 2)
		assert.LessOrEqual(t, len(e.Skills), 5)
		assertDistinct(t, e.Skills)
		assert.Equal(t, "https://picsum.photos/seed/"+e.ID+"/64/64", e.AvatarURL)
	}
}

func TestProjects(t *testing.T) {
	projects := New(rand.New(rand.NewSource(3))).Projects(7)

	require.Len(t, projects, 7)
	assert.Equal(t, "Website Redesign", projects[0].Name)
	assert.Equal(t, "Data Warehouse", projects[4].Name)
	assert.Equal(t, "Project 6", projects[5].Name)
	assert.Equal(t, "Generic project description", projects[6].Description)
	assert.Equal(t, "PRJ007", projects[6].ID)

	for _, p := range projects {
		require.NoError(t, p.Validate())
		assert.GreaterOrEqual(t, len(p.RequiredSkills), 2)
		assert.LessOrEqual(t, len(p.RequiredSkills), 4)
		assertDistinct(t, p.RequiredSkills)
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeeded(99).Dataset(10, 3)
	b := NewSeeded(99).Dataset(10, 3)

	assert.Equal(t, a, b)
	require.NoError(t, a.Validate())
}

func TestAvailabilityRatio(t *testing.T) {
	employees := New(rand.New(rand.NewSource(5))).Employees(2000)
	ratio := float64(employees.AvailableCount()) / float64(employees.Len())

	assert.InDelta(t, availableRatio, ratio, 0.05)
}

func assertDistinct(t *testing.T, values []string) {
	t.Helper()
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		_, dup := seen[v]
		assert.False(t, dup, "duplicate value %q in %v", v, values)
		seen[v] = struct{}{}
	}
}
