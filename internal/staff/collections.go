package staff

type Employees []Employee

type Projects []Project

func (e Employees) Len() int {
	return len(e)
}

// FindByID returns a pointer into the collection or nil when the id is unknown.
func (e Employees) FindByID(id string) *Employee {
	for i := range e {
		if e[i].ID == id {
			return &e[i]
		}
	}
	return nil
}

func (e Employees) IDs() []string {
	ids := make([]string, 0, len(e))
	for _, employee := range e {
		ids = append(ids, employee.ID)
	}
	return ids
}

// AvailableCount returns how many employees are currently free.
func (e Employees) AvailableCount() int {
	count := 0
	for _, employee := range e {
		if employee.Available {
			count++
		}
	}
	return count
}

func (p Projects) Len() int {
	return len(p)
}

func (p Projects) FindByID(id string) *Project {
	for i := range p {
		if p[i].ID == id {
			return &p[i]
		}
	}
	return nil
}

func (p Projects) IDs() []string {
	ids := make([]string, 0, len(p))
	for _, project := range p {
		ids = append(ids, project.ID)
	}
	return ids
}

// Names returns "ID name" labels, used by interactive selection.
func (p Projects) Names() []string {
	names := make([]string, 0, len(p))
	for _, project := range p {
		names = append(names, project.ID+" "+project.Name)
	}
	return names
}
