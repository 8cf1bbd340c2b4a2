package class

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trezcool/shule/core"
)

var (
	requiredText    = "this field is required"
	wholeNumberText = "%s must be a whole number"
)

// Form is the editable, string-typed state of a Class.
type Form struct {
	Name       string   `json:"name"`
	Subject    string   `json:"subject"`
	TeacherID  string   `json:"teacher_id"`
	StudentIDs []string `json:"student_ids"`
	Schedule   string   `json:"schedule"`
	Room       string   `json:"room"`
	Capacity   string   `json:"capacity"`
}

func NewForm() Form {
	return Form{StudentIDs: []string{}}
}

// ToForm seeds a form from an existing class; nil yields a blank form.
func ToForm(c *Class) Form {
	if c == nil {
		return NewForm()
	}
	return Form{
		Name:       c.Name,
		Subject:    c.Subject,
		TeacherID:  c.TeacherID.String(),
		StudentIDs: c.StudentIDs.Strings(),
		Schedule:   c.Schedule,
		Room:       c.Room,
		Capacity:   strconv.Itoa(c.Capacity),
	}
}

// IsSelected reports whether the student is part of the selection.
func (f Form) IsSelected(studentID int) bool {
	id := strconv.Itoa(studentID)
	for _, sid := range f.StudentIDs {
		if core.CleanString(sid) == id {
			return true
		}
	}
	return false
}

// ToggleStudent adds the student to the selection, or removes it when already selected.
// The order of the other selected students is kept.
func (f *Form) ToggleStudent(studentID int) {
	id := strconv.Itoa(studentID)
	if !f.IsSelected(studentID) {
		f.StudentIDs = append(f.StudentIDs, id)
		return
	}
	kept := make([]string, 0, len(f.StudentIDs))
	for _, sid := range f.StudentIDs {
		if core.CleanString(sid) != id {
			kept = append(kept, sid)
		}
	}
	f.StudentIDs = kept
}

// ToPayload parses the numeric fields of the form. Every unparsable field is reported.
func (f Form) ToPayload() (Payload, error) {
	p := Payload{
		Name:     f.Name,
		Subject:  f.Subject,
		Schedule: f.Schedule,
		Room:     f.Room,
	}
	var fldErrs []core.FieldError

	if n, fErr := parseWholeNumber("teacher_id", f.TeacherID); fErr != nil {
		fldErrs = append(fldErrs, *fErr)
	} else {
		p.TeacherID = core.RelationID(n)
	}

	if n, fErr := parseWholeNumber("capacity", f.Capacity); fErr != nil {
		fldErrs = append(fldErrs, *fErr)
	} else {
		p.Capacity = n
	}

	ids, err := core.ParseIDList(strings.Join(f.StudentIDs, ","))
	if err != nil {
		fldErrs = append(fldErrs, core.FieldError{Field: "student_ids", Error: "student_ids must only contain whole numbers"})
	} else {
		p.StudentIDs = ids
	}

	if len(fldErrs) > 0 {
		return Payload{}, core.NewValidationError(nil, fldErrs...)
	}
	return p, nil
}

func parseWholeNumber(field, value string) (int, *core.FieldError) {
	value = core.CleanString(value)
	if value == "" {
		return 0, &core.FieldError{Field: field, Error: requiredText}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &core.FieldError{Field: field, Error: fmt.Sprintf(wholeNumberText, field)}
	}
	return n, nil
}
