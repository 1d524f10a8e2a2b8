// Package generator produces synthetic employees and projects for demos and tests.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spigell/staffmatch/internal/staff"
)

const (
	DefaultEmployees = 20
	DefaultProjects  = 5

	// availableRatio is the share of generated employees marked as available.
	availableRatio = 0.7
)

var (
	SkillPool = []string{
		"Python", "React", "Java", "SQL", "AWS",
		"Docker", "Machine Learning", "Data Analysis", "Figma", "TypeScript",
	}

	firstNames = []string{"Alex", "Jordan", "Taylor", "Casey", "Morgan", "Riley", "Jamie", "Quinn", "Avery", "Peyton"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}

	projectTemplates = []struct {
		name        string
		description string
	}{
		{name: "Website Redesign", description: "Modernizing the corporate website."},
		{name: "AI Chatbot", description: "Customer support automation using NLP."},
		{name: "Migration to Cloud", description: "Moving legacy database to AWS."},
		{name: "Mobile App V2", description: "Flutter based mobile application update."},
		{name: "Data Warehouse", description: "Centralized analytics platform setup."},
	}
)

type Generator struct {
	rand *rand.Rand
}

// New returns a generator drawing from r. A nil r seeds from the clock.
func New(r *rand.Rand) *Generator {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rand: r}
}

// NewSeeded returns a generator with a deterministic source; seed 0 means random.
func NewSeeded(seed int64) *Generator {
	if seed == 0 {
		return New(nil)
	}
	return New(rand.New(rand.NewSource(seed)))
}

// Employees returns n employees with ids EMP001, EMP002, ... each holding 2 to 5 distinct skills.
func (g *Generator) Employees(n int) staff.Employees {
	employees := make(staff.Employees, 0, n)
	for i := range n {
		id := fmt.Sprintf("EMP%03d", i+1)
		employees = append(employees, staff.Employee{
			ID:        id,
			Name:      g.pick(firstNames) + " " + g.pick(lastNames),
			Skills:    g.skills(g.rand.Intn(4) + 2),
			Level:     g.level(),
			Available: g.rand.Float64() < availableRatio,
			AvatarURL: staff.DefaultAvatarURL(id),
		})
	}
	return employees
}

// Projects returns n projects with ids PRJ001, PRJ002, ... each requiring 2 to 4 distinct skills.
// The first five use the built-in names; later ones get generic names.
func (g *Generator) Projects(n int) staff.Projects {
	projects := make(staff.Projects, 0, n)
	for i := range n {
		name := fmt.Sprintf("Project %d", i+1)
		description := "Generic project description"
		if i < len(projectTemplates) {
			name = projectTemplates[i].name
			description = projectTemplates[i].description
		}

		projects = append(projects, staff.Project{
			ID:             fmt.Sprintf("PRJ%03d", i+1),
			Name:           name,
			Description:    description,
			RequiredSkills: g.skills(g.rand.Intn(3) + 2),
			RequiredLevel:  g.level(),
		})
	}
	return projects
}

// Dataset generates a full dataset in one go.
func (g *Generator) Dataset(employees, projects int) *staff.Dataset {
	return &staff.Dataset{
		Employees: g.Employees(employees),
		Projects:  g.Projects(projects),
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

func (g *Generator) level() staff.Level {
	levels := staff.Levels()
	return levels[g.rand.Intn(len(levels))]
}

func (g *Generator) skills(count int) []string {
	if count > len(SkillPool) {
		count = len(SkillPool)
	}

	skills := make([]string, 0, count)
	for _, idx := range g.rand.Perm(len(SkillPool))[:count] {
		skills = append(skills, SkillPool[idx])
	}
	return skills
}
