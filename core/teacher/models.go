package teacher

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var Statuses = []string{StatusActive, StatusInactive}

type Teacher struct {
	ID         int             `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Subjects   core.StringList `json:"subjects"`
	HireDate   string          `json:"hire_date"`
	Department string          `json:"department"`
	Status     string          `json:"status"`
}

func (t Teacher) FullName() string {
	return core.CleanString(t.FirstName + " " + t.LastName)
}

func (t Teacher) IsActive() bool {
	return t.Status == StatusActive
}

// Payload contains the information needed to create or replace a Teacher.
type Payload struct {
	FirstName  string   `json:"first_name" validate:"required"`
	LastName   string   `json:"last_name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"phone"`
	Subjects   []string `json:"subjects"`
	HireDate   string   `json:"hire_date" validate:"omitempty,isodate"`
	Department string   `json:"department" validate:"required"`
	Status     string   `json:"status" validate:"required,oneof=Active Inactive"`
}

func (p *Payload) Validate(validate *validator.Validate) error {
	p.FirstName = core.CleanString(p.FirstName)
	p.LastName = core.CleanString(p.LastName)
	p.Email = core.CleanString(p.Email, true /* lower */)
	p.Phone = core.CleanString(p.Phone)
	p.HireDate = core.CleanString(p.HireDate)
	p.Department = core.CleanString(p.Department)
	p.Subjects = cleanSubjects(p.Subjects)
	return validate.Struct(p)
}

func (p Payload) FullName() string {
	return core.CleanString(p.FirstName + " " + p.LastName)
}

type QueryFilter struct {
	Search     string `query:"search"`
	Department string `query:"department"`
	Status     string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return core.CleanString(qf.Search) == "" && !core.IsFilterSet(qf.Department) && !core.IsFilterSet(qf.Status)
}

// Clean trims the categorical filters. Search is matched as typed.
func (qf *QueryFilter) Clean() {
	qf.Department = core.CleanString(qf.Department)
	qf.Status = core.CleanString(qf.Status)
}

// cleanSubjects trims subjects and drops the blank ones.
func cleanSubjects(subjects []string) []string {
	cleaned := make([]string, 0, len(subjects))
	for _, s := range subjects {
		if s = core.CleanString(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
