package student

import (
	"strconv"

	"github.com/trezcool/shule/core"
)

// Form is the editable, string-typed state of a Student.
type Form struct {
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
	Score          string `json:"score"`
}

// NewForm returns a blank form with the defaults of a new student.
func NewForm() Form {
	return Form{Status: StatusActive, Grade: Grade9}
}

// ToForm seeds a form from an existing student; nil yields a blank form.
func ToForm(s *Student) Form {
	if s == nil {
		return NewForm()
	}
	f := Form{
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    s.DateOfBirth,
		EnrollmentDate: s.EnrollmentDate,
		Status:         s.Status,
		Grade:          s.Grade,
		ParentContact:  s.ParentContact,
		Address:        s.Address,
	}
	if s.Score != nil {
		f.Score = strconv.Itoa(*s.Score)
	}
	return f
}

// ToPayload converts the form into a payload. A non-numeric score is reported as a field error.
func (f Form) ToPayload() (Payload, error) {
	p := Payload{
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Email:          f.Email,
		Phone:          f.Phone,
		DateOfBirth:    f.DateOfBirth,
		EnrollmentDate: f.EnrollmentDate,
		Status:         f.Status,
		Grade:          f.Grade,
		ParentContact:  f.ParentContact,
		Address:        f.Address,
	}
	if score := core.CleanString(f.Score); score != "" {
		n, err := strconv.Atoi(score)
		if err != nil {
			return Payload{}, core.NewValidationError(nil, core.FieldError{Field: "score", Error: "score must be a whole number"})
		}
		p.Score = &n
	}
	return p, nil
}
