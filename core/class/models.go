package class

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Class struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Subject    string          `json:"subject"`
	TeacherID  core.RelationID `json:"teacher_id"`
	StudentIDs core.IDList     `json:"student_ids"`
	Schedule   string          `json:"schedule"`
	Room       string          `json:"room"`
	Capacity   int             `json:"capacity"`
}

// EnrolledCount is the number of students enrolled in the class.
func (c Class) EnrolledCount() int {
	return c.StudentIDs.Len()
}

// Payload contains the information needed to create or replace a Class.
// Capacity is advisory: enrolling more students than it allows is not rejected.
type Payload struct {
	Name       string          `json:"name" validate:"required"`
	Subject    string          `json:"subject" validate:"required"`
	TeacherID  core.RelationID `json:"teacher_id" validate:"required,min=1"`
	StudentIDs core.IDList     `json:"student_ids"`
	Schedule   string          `json:"schedule"`
	Room       string          `json:"room"`
	Capacity   int             `json:"capacity" validate:"min=1"`
}

func (p *Payload) Validate(validate *validator.Validate) error {
	p.Name = core.CleanString(p.Name)
	p.Subject = core.CleanString(p.Subject)
	p.Schedule = core.CleanString(p.Schedule)
	p.Room = core.CleanString(p.Room)
	if p.StudentIDs == nil {
		p.StudentIDs = core.IDList{}
	}
	return validate.Struct(p)
}

type QueryFilter struct {
	Search  string `query:"search"`
	Subject string `query:"subject"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return core.CleanString(qf.Search) == "" && !core.IsFilterSet(qf.Subject)
}

// Clean trims the categorical filters. Search is matched as typed.
func (qf *QueryFilter) Clean() {
	qf.Subject = core.CleanString(qf.Subject)
}
