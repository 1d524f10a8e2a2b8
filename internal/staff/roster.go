package staff

import (
	"fmt"
	"sync"
)

// Roster is the in-session store behind the dashboard. Records are only ever
// appended; readers get copies so a ranking always works on a stable snapshot.
type Roster struct {
	mu        sync.RWMutex
	employees Employees
	projects  Projects
}

type Stats struct {
	Employees int `json:"employees"`
	Projects  int `json:"projects"`
	Available int `json:"available"`
}

func NewRoster(dataset *Dataset) *Roster {
	r := &Roster{}
	if dataset == nil {
		return r
	}

	for _, e := range dataset.Employees {
		r.employees = append(r.employees, e.Clone())
	}
	for _, p := range dataset.Projects {
		r.projects = append(r.projects, p.Clone())
	}
	return r
}

func (r *Roster) Employees() Employees {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(Employees, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e.Clone())
	}
	return out
}

func (r *Roster) Projects() Projects {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(Projects, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p.Clone())
	}
	return out
}

func (r *Roster) Project(id string) (Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.projects.FindByID(id)
	if p == nil {
		return Project{}, false
	}
	return p.Clone(), true
}

// AddEmployee validates the record and appends it. An empty id gets a generated one
// and an empty avatar gets the default placeholder.
func (r *Roster) AddEmployee(e Employee) (Employee, error) {
	if e.ID == "" {
		e.ID = NewEmployeeID()
	}
	if e.AvatarURL == "" {
		e.AvatarURL = DefaultAvatarURL(e.ID)
	}

	employee, err := NewEmployee(e)
	if err != nil {
		return Employee{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.employees.FindByID(employee.ID) != nil {
		return Employee{}, fmt.Errorf("employee %q: %w", employee.ID, ErrDuplicateID)
	}
	r.employees = append(r.employees, employee.Clone())

	return employee, nil
}

func (r *Roster) AddProject(p Project) (Project, error) {
	if p.ID == "" {
		p.ID = NewProjectID()
	}

	project, err := NewProject(p)
	if err != nil {
		return Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.projects.FindByID(project.ID) != nil {
		return Project{}, fmt.Errorf("project %q: %w", project.ID, ErrDuplicateID)
	}
	r.projects = append(r.projects, project.Clone())

	return project, nil
}

func (r *Roster) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		Employees: r.employees.Len(),
		Projects:  r.projects.Len(),
		Available: r.employees.AvailableCount(),
	}
}
