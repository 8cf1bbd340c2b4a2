package tests

import (
	"net/http"
	"testing"

	. "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/tests"
)

func Test_classAPI_query(t *testing.T) {
	app := setup(t)
	svc := app.svcs.Classes

	algebra := testutil.CreateClass(t, svc, "Algebra", "Math", 1, 30, 1, 2)
	bio := testutil.CreateClass(t, svc, "Biology I", "Biology", 2, 20)
	geometry := testutil.CreateClass(t, svc, "Geometry", "Math", 1, 25, 3)

	run(t, app, []httpTest{
		{name: "all", path: "/v1/classes", wantData: marchallList(t, algebra, bio, geometry)},
		{name: "search room", path: "/v1/classes?search=r-bio", wantData: marchallList(t, bio)},
		{name: "subject", path: "/v1/classes?subject=Math", wantData: marchallList(t, algebra, geometry)},
		{name: "subject all", path: "/v1/classes?subject=all", wantData: marchallList(t, algebra, bio, geometry)},
		{name: "ordering", path: "/v1/classes?ordering=-enrolled", wantData: marchallList(t, algebra, geometry, bio)},
		{name: "subjects", path: "/v1/classes/subjects", wantData: marchallList(t, "Math", "Biology")},
	})
}

func Test_classAPI_crud(t *testing.T) {
	app := setup(t)

	form := class.Form{
		Name: "Algebra", Subject: "Math", TeacherID: "4", StudentIDs: []string{"1", " 2", "1"},
		Schedule: "Mon 9:00", Room: "B12", Capacity: "30",
	}
	created := class.Class{
		ID: 1, Name: "Algebra", Subject: "Math", TeacherID: 4, StudentIDs: core.IDList{1, 2},
		Schedule: "Mon 9:00", Room: "B12", Capacity: 30,
	}
	notNumbers := form
	notNumbers.TeacherID = "Ada"
	notNumbers.Capacity = ""
	noCapacity := form
	noCapacity.Capacity = "0"

	update := class.ToForm(&created)
	update.StudentIDs = []string{}
	updated := created
	updated.StudentIDs = core.IDList{}

	run(t, app, []httpTest{
		{name: "new form", path: "/v1/classes/form", wantData: marchallObj(t, class.NewForm())},
		{
			name: "unparsable numbers", method: http.MethodPost, path: "/v1/classes", body: marchallObj(t, notNumbers),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"teacher_id": "teacher_id must be a whole number",
				"capacity":   "this field is required",
			}),
		},
		{
			name: "zero capacity", method: http.MethodPost, path: "/v1/classes", body: marchallObj(t, noCapacity),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"capacity": "capacity must be 1 or greater"}),
		},
		{
			name: "create", method: http.MethodPost, path: "/v1/classes", body: marchallObj(t, form),
			wantCode: http.StatusCreated, wantData: marchallObj(t, created),
		},
		{name: "retrieve", path: "/v1/classes/1", wantData: marchallObj(t, created)},
		{name: "edit form", path: "/v1/classes/1/form", wantData: marchallObj(t, class.ToForm(&created))},
		{name: "update", method: http.MethodPut, path: "/v1/classes/1", body: marchallObj(t, update), wantData: marchallObj(t, updated)},
		{name: "unknown", path: "/v1/classes/3", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "class not found"})},
		{name: "delete", method: http.MethodDelete, path: "/v1/classes/1", wantCode: http.StatusNoContent},
	})
}

func Test_classAPI_toggleStudent(t *testing.T) {
	app := setup(t)
	form := class.Form{Name: "Algebra", StudentIDs: []string{"1", "2", "3"}}
	path := "/v1/classes/form/toggle-student"

	withStudents := func(ids ...string) []byte {
		f := form
		f.StudentIDs = ids
		return marchallObj(t, f)
	}

	run(t, app, []httpTest{
		{
			name: "deselect", method: http.MethodPost, path: path,
			body:     marchallObj(t, ToggleStudentRequest{Form: form, StudentID: 2}),
			wantData: withStudents("1", "3"),
		},
		{
			name: "select", method: http.MethodPost, path: path,
			body:     marchallObj(t, ToggleStudentRequest{Form: form, StudentID: 7}),
			wantData: withStudents("1", "2", "3", "7"),
		},
		{
			name: "missing student", method: http.MethodPost, path: path,
			body:     marchallObj(t, ToggleStudentRequest{Form: form}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_id": "this field is required"}),
		},
	})
}

func Test_classAPI_roster(t *testing.T) {
	app := setup(t)
	jane := testutil.CreateStudent(t, app.svcs.Students, "Jane", "Doe", "jane@school.cd", student.StatusActive, student.Grade9)
	ada := testutil.CreateTeacher(t, app.svcs.Teachers, "Ada", "Lovelace", "ada@school.cd", "Science", teacher.StatusActive)
	algebra := testutil.CreateClass(t, app.svcs.Classes, "Algebra", "Math", ada.ID, 4, jane.ID, 42)

	run(t, app, []httpTest{
		{
			name: "roster", path: "/v1/classes/1/roster",
			wantData: marchallObj(t, class.Roster{
				Class:       algebra,
				TeacherName: "Ada Lovelace",
				Students: []class.RosterStudent{
					{ID: jane.ID, Name: "Jane Doe", Email: "jane@school.cd", Grade: student.Grade9},
					{ID: 42, Name: class.UnknownStudent},
				},
				Enrolled: 2,
			}),
		},
		{name: "unknown class", path: "/v1/classes/9/roster", wantCode: http.StatusNotFound},
	})
}
