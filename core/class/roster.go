package class

import (
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
)

// Placeholders shown for references to records that no longer exist.
const (
	UnknownTeacher = "Unknown Teacher"
	UnknownStudent = "Unknown"
)

type (
	RosterStudent struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Grade string `json:"grade"`
	}

	// Roster is a class with its references resolved to display names.
	Roster struct {
		Class       Class           `json:"class"`
		TeacherName string          `json:"teacher_name"`
		Students    []RosterStudent `json:"students"`
		Enrolled    int             `json:"enrolled"`
	}
)

// TeacherName returns the full name of the referenced teacher.
func TeacherName(teachers []teacher.Teacher, id core.RelationID) string {
	for _, t := range teachers {
		if t.ID == id.Int() {
			return t.FullName()
		}
	}
	return UnknownTeacher
}

// StudentNames returns the full names of the referenced students, in reference order.
func StudentNames(students []student.Student, ids core.IDList) []string {
	byID := indexStudents(students)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			names = append(names, s.FullName())
		} else {
			names = append(names, UnknownStudent)
		}
	}
	return names
}

func NewRoster(c Class, teachers []teacher.Teacher, students []student.Student) Roster {
	byID := indexStudents(students)
	roster := Roster{
		Class:       c,
		TeacherName: TeacherName(teachers, c.TeacherID),
		Students:    make([]RosterStudent, 0, c.StudentIDs.Len()),
		Enrolled:    c.EnrolledCount(),
	}
	for _, id := range c.StudentIDs {
		rs := RosterStudent{ID: id, Name: UnknownStudent}
		if s, ok := byID[id]; ok {
			rs.Name = s.FullName()
			rs.Email = s.Email
			rs.Grade = s.Grade
		}
		roster.Students = append(roster.Students, rs)
	}
	return roster
}

func indexStudents(students []student.Student) map[int]student.Student {
	byID := make(map[int]student.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	return byID
}
