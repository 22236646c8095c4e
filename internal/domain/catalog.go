package domain

import "slices"

type Manager struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Department Department `json:"department" yaml:"department"`
}

// Catalog holds the static lookup tables the validation rules consult.
// It is treated as read-only input; its internal consistency is not checked.
type Catalog struct {
	Departments   []Department            `json:"departments" yaml:"departments"`
	JobTypes      []JobType               `json:"job_types" yaml:"job_types"`
	Relationships []Relationship          `json:"relationships" yaml:"relationships"`
	Skills        map[Department][]string `json:"skills" yaml:"skills"`
	Managers      []Manager               `json:"managers" yaml:"managers"`
}

func (c *Catalog) HasDepartment(d Department) bool {
	return slices.Contains(c.Departments, d)
}

func (c *Catalog) HasJobType(j JobType) bool {
	return slices.Contains(c.JobTypes, j)
}

func (c *Catalog) HasRelationship(r Relationship) bool {
	return slices.Contains(c.Relationships, r)
}

// SkillsFor returns the skill catalog of a department
func (c *Catalog) SkillsFor(d Department) []string {
	return c.Skills[d]
}

// ManagersFor returns the managers a new hire of department d may report to
func (c *Catalog) ManagersFor(d Department) []Manager {
	var out []Manager
	for _, m := range c.Managers {
		if m.Department == d {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) Manager(id string) (Manager, bool) {
	for _, m := range c.Managers {
		if m.ID == id {
			return m, true
		}
	}
	return Manager{}, false
}

// DepartmentNames returns the values as plain strings for enum rules.
func DepartmentNames(ds []Department) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = string(d)
	}
	return out
}

func JobTypeNames(js []JobType) []string {
	out := make([]string, len(js))
	for i, j := range js {
		out[i] = string(j)
	}
	return out
}

func RelationshipNames(rs []Relationship) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
