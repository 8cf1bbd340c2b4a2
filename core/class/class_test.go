package class_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/records"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/tests"
)

func TestService_crud(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	svcs := testutil.NewServices(testutil.NewLogger(conf))
	svc := svcs.Classes

	created, err := svc.Create(ctx, class.Payload{
		Name: "Algebra I", Subject: "Math", TeacherID: 3, StudentIDs: core.IDList{10, 11, 12},
		Schedule: "Mon 9:00", Room: "B12", Capacity: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 3, created.EnrolledCount())
	assert.Equal(t, core.RelationID(3), created.TeacherID)

	rec, err := svcs.DB.GetRecordByID(ctx, class.TableName, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "10,11,12", rec["student_ids_c"])
	assert.Equal(t, "Algebra I", rec[records.NameColumn])

	updated, err := svc.Update(ctx, created.ID, class.Payload{
		Name: "Algebra II", Subject: "Math", TeacherID: 3, StudentIDs: core.IDList{10}, Capacity: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, core.IDList{10}, updated.StudentIDs)

	subjects, err := svc.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, subjects)

	_, err = svc.GetByID(ctx, 999)
	assert.Equal(t, class.ErrNotFound, err)
}

func TestFilter(t *testing.T) {
	classes := []class.Class{
		{ID: 1, Name: "Algebra I", Subject: "Math", Room: "R-101"},
		{ID: 2, Name: "Biology", Subject: "Science", Room: "R-Bio"},
		{ID: 3, Name: "Geometry", Subject: "Math", Room: "R-102"},
	}
	ids := func(cs []class.Class) []int {
		res := make([]int, 0, len(cs))
		for _, c := range cs {
			res = append(res, c.ID)
		}
		return res
	}

	tests := []struct {
		name   string
		filter class.QueryFilter
		want   []int
	}{
		{name: "all", filter: class.QueryFilter{Subject: core.FilterAll}, want: []int{1, 2, 3}},
		{name: "search name", filter: class.QueryFilter{Search: "ALGEBRA"}, want: []int{1}},
		{name: "search room", filter: class.QueryFilter{Search: "r-10"}, want: []int{1, 3}},
		{name: "search subject", filter: class.QueryFilter{Search: "scien"}, want: []int{2}},
		{name: "subject", filter: class.QueryFilter{Subject: "Math"}, want: []int{1, 3}},
		{name: "and composition", filter: class.QueryFilter{Search: "geo", Subject: "Math"}, want: []int{3}},
		{name: "no match", filter: class.QueryFilter{Search: "lol"}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := class.Filter(classes, tt.filter)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, got, class.Filter(got, tt.filter))

			// a stricter filter keeps a subset of the result
			if !core.IsFilterSet(tt.filter.Subject) {
				stricter := tt.filter
				stricter.Subject = "Math"
				assert.Subset(t, ids(got), ids(class.Filter(classes, stricter)))
			}
		})
	}
}

func TestClass_decodeShapes(t *testing.T) {
	// the record store may return either shape for relations
	fromString := records.Record{"Id": 1, "name_c": "Bio", "teacher_id_c": map[string]interface{}{"Id": 2, "Name": "Ada"}, "student_ids_c": "10,11,12", "capacity_c": 4}
	fromList := records.Record{"Id": 1, "name_c": "Bio", "teacher_id_c": 2, "student_ids_c": []interface{}{10, 11, 12}, "capacity_c": 4}

	var c1, c2 class.Class
	require.NoError(t, class.Fields.Decode(fromString, &c1))
	require.NoError(t, class.Fields.Decode(fromList, &c2))
	assert.Equal(t, c1, c2)
	assert.Equal(t, 3, c1.EnrolledCount())
}

func TestForm_ToggleStudent(t *testing.T) {
	f := class.NewForm()
	f.ToggleStudent(3)
	f.ToggleStudent(1)
	f.ToggleStudent(2)
	assert.Equal(t, []string{"3", "1", "2"}, f.StudentIDs)

	f.ToggleStudent(1)
	assert.Equal(t, []string{"3", "2"}, f.StudentIDs)
	assert.False(t, f.IsSelected(1))

	// toggling twice restores the selection
	before := append([]string(nil), f.StudentIDs...)
	f.ToggleStudent(7)
	f.ToggleStudent(7)
	assert.Equal(t, before, f.StudentIDs)
}

func TestForm_roundTrip(t *testing.T) {
	c := class.Class{
		ID: 5, Name: "Algebra I", Subject: "Math", TeacherID: 3, StudentIDs: core.IDList{10, 11, 12},
		Schedule: "Mon 9:00", Room: "B12", Capacity: 30,
	}
	f := class.ToForm(&c)
	assert.Equal(t, class.Form{
		Name: "Algebra I", Subject: "Math", TeacherID: "3", StudentIDs: []string{"10", "11", "12"},
		Schedule: "Mon 9:00", Room: "B12", Capacity: "30",
	}, f)

	p, err := f.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, class.Payload{
		Name: c.Name, Subject: c.Subject, TeacherID: c.TeacherID, StudentIDs: c.StudentIDs,
		Schedule: c.Schedule, Room: c.Room, Capacity: c.Capacity,
	}, p)

	assert.Equal(t, class.NewForm(), class.ToForm(nil))
}

func TestForm_ToPayload_errors(t *testing.T) {
	tests := []struct {
		name string
		form class.Form
		want []core.FieldError
	}{
		{
			name: "empty numbers",
			form: class.Form{Name: "Bio"},
			want: []core.FieldError{
				{Field: "teacher_id", Error: "this field is required"},
				{Field: "capacity", Error: "this field is required"},
			},
		},
		{
			name: "non-numeric",
			form: class.Form{Name: "Bio", TeacherID: "ada", Capacity: "30", StudentIDs: []string{"1", "x"}},
			want: []core.FieldError{
				{Field: "teacher_id", Error: "teacher_id must be a whole number"},
				{Field: "student_ids", Error: "student_ids must only contain whole numbers"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.ToPayload()
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, "ToPayload() error = %v; want *core.ValidationError", err)
			assert.Equal(t, tt.want, vErr.Fields)
		})
	}
}

func TestPayload_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	p := class.Payload{Name: "Bio", Subject: "Science", TeacherID: 1, Capacity: 0}
	assert.Error(t, p.Validate(validate), "zero capacity must be rejected")

	// capacity is advisory
	p = class.Payload{Name: "Bio", Subject: "Science", TeacherID: 1, Capacity: 1, StudentIDs: core.IDList{1, 2, 3}}
	assert.NoError(t, p.Validate(validate))
}

func TestRoster(t *testing.T) {
	teachers := []teacher.Teacher{{ID: 3, FirstName: "Ada", LastName: "Lovelace"}}
	students := []student.Student{
		{ID: 10, FirstName: "Jane", LastName: "Doe", Email: "jane@school.cd", Grade: student.Grade9},
		{ID: 12, FirstName: "John", LastName: "Smith"},
	}

	var c class.Class
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Bio","teacher_id":3,"student_ids":"10,11,12","capacity":4}`), &c))

	assert.Equal(t, "Ada Lovelace", class.TeacherName(teachers, c.TeacherID))
	assert.Equal(t, class.UnknownTeacher, class.TeacherName(teachers, 99))
	assert.Equal(t, []string{"Jane Doe", class.UnknownStudent, "John Smith"}, class.StudentNames(students, c.StudentIDs))

	roster := class.NewRoster(c, teachers, students)
	assert.Equal(t, 3, roster.Enrolled)
	assert.Equal(t, "Ada Lovelace", roster.TeacherName)
	assert.Equal(t, []class.RosterStudent{
		{ID: 10, Name: "Jane Doe", Email: "jane@school.cd", Grade: student.Grade9},
		{ID: 11, Name: class.UnknownStudent},
		{ID: 12, Name: "John Smith"},
	}, roster.Students)
}
