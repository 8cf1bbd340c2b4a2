package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Grades
const (
	Grade9  = "9th"
	Grade10 = "10th"
	Grade11 = "11th"
	Grade12 = "12th"
)

var (
	Statuses = []string{StatusActive, StatusInactive}
	Grades   = []string{Grade9, Grade10, Grade11, Grade12}
)

type Student struct {
	ID             int    `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	EnrollmentDate string `json:"enrollment_date"`
	Status         string `json:"status"`
	Grade          string `json:"grade"`
	ParentContact  string `json:"parent_contact"`
	Address        string `json:"address"`
	Score          *int   `json:"score"`
}

func (s Student) FullName() string {
	return core.CleanString(s.FirstName + " " + s.LastName)
}

func (s Student) IsActive() bool {
	return s.Status == StatusActive
}

// Payload contains the information needed to create or replace a Student.
type Payload struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty,isodate"`
	EnrollmentDate string `json:"enrollment_date" validate:"omitempty,isodate"`
	Status         string `json:"status" validate:"required,oneof=Active Inactive"`
	Grade          string `json:"grade" validate:"required,oneof=9th 10th 11th 12th"`
	ParentContact  string `json:"parent_contact"`
	Address        string `json:"address"`
	Score          *int   `json:"score" validate:"omitempty,min=0"`
}

func (p *Payload) Validate(validate *validator.Validate) error {
	p.FirstName = core.CleanString(p.FirstName)
	p.LastName = core.CleanString(p.LastName)
	p.Email = core.CleanString(p.Email, true /* lower */)
	p.Phone = core.CleanString(p.Phone)
	p.DateOfBirth = core.CleanString(p.DateOfBirth)
	p.EnrollmentDate = core.CleanString(p.EnrollmentDate)
	p.ParentContact = core.CleanString(p.ParentContact)
	p.Address = core.CleanString(p.Address)
	return validate.Struct(p)
}

// FullName is the display name stored alongside the record.
func (p Payload) FullName() string {
	return core.CleanString(p.FirstName + " " + p.LastName)
}

type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
	Grade  string `query:"grade"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return core.CleanString(qf.Search) == "" && !core.IsFilterSet(qf.Status) && !core.IsFilterSet(qf.Grade)
}

// Clean trims the categorical filters. Search is matched as typed.
func (qf *QueryFilter) Clean() {
	qf.Status = core.CleanString(qf.Status)
	qf.Grade = core.CleanString(qf.Grade)
}
