package teacher

// Form is the editable state of a Teacher. Subjects keep blank entries while editing.
type Form struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Subjects   []string `json:"subjects"`
	HireDate   string   `json:"hire_date"`
	Department string   `json:"department"`
	Status     string   `json:"status"`
}

func NewForm() Form {
	return Form{Status: StatusActive, Subjects: []string{}}
}

// ToForm seeds a form from an existing teacher; nil yields a blank form.
func ToForm(t *Teacher) Form {
	if t == nil {
		return NewForm()
	}
	subjects := make([]string, len(t.Subjects))
	copy(subjects, t.Subjects)
	return Form{
		FirstName:  t.FirstName,
		LastName:   t.LastName,
		Email:      t.Email,
		Phone:      t.Phone,
		Subjects:   subjects,
		HireDate:   t.HireDate,
		Department: t.Department,
		Status:     t.Status,
	}
}

// AddSubject appends an empty subject entry.
func (f *Form) AddSubject() {
	f.Subjects = append(f.Subjects, "")
}

// SetSubject replaces the subject at index i. Out of range indexes are ignored.
func (f *Form) SetSubject(i int, value string) {
	if i < 0 || i >= len(f.Subjects) {
		return
	}
	f.Subjects[i] = value
}

// RemoveSubject drops the subject at index i. Out of range indexes are ignored.
func (f *Form) RemoveSubject(i int) {
	if i < 0 || i >= len(f.Subjects) {
		return
	}
	subjects := make([]string, 0, len(f.Subjects)-1)
	subjects = append(subjects, f.Subjects[:i]...)
	f.Subjects = append(subjects, f.Subjects[i+1:]...)
}

// ToPayload converts the form into a payload, dropping blank subjects.
func (f Form) ToPayload() (Payload, error) {
	return Payload{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Email:      f.Email,
		Phone:      f.Phone,
		Subjects:   cleanSubjects(f.Subjects),
		HireDate:   f.HireDate,
		Department: f.Department,
		Status:     f.Status,
	}, nil
}
