package student_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/tests"
)

func TestService_crud(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	svcs := testutil.NewServices(testutil.NewLogger(conf))
	svc := svcs.Students

	score := 88
	created, err := svc.Create(ctx, student.Payload{
		FirstName: "Jane", LastName: "Doe", Email: "jane@school.cd",
		Status: student.StatusActive, Grade: student.Grade10, Score: &score,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Jane Doe", created.FullName())
	require.NotNil(t, created.Score)
	assert.Equal(t, 88, *created.Score)

	// storage uses the mapped column names and the display name
	rec, err := svcs.DB.GetRecordByID(ctx, student.TableName, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec[records.NameColumn])
	assert.Equal(t, "jane@school.cd", rec["email_c"])
	assert.Equal(t, "10th", rec["grade_c"])

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, got)

	updated, err := svc.Update(ctx, created.ID, student.Payload{
		FirstName: "Jane", LastName: "Smith", Email: "jane@school.cd",
		Status: student.StatusInactive, Grade: student.Grade11,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Jane Smith", updated.FullName())
	assert.Nil(t, updated.Score)

	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []student.Student{*updated}, all)

	ok, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.GetByID(ctx, created.ID)
	assert.Equal(t, student.ErrNotFound, err)
	assert.True(t, core.IsNotFound(err))

	ok, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := svc.Update(ctx, 999, student.Payload{FirstName: "X"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	svc := testutil.NewServices(testutil.NewLogger(conf)).Students

	jane := testutil.CreateStudent(t, svc, "Jane", "Doe", "jane@school.cd", student.StatusActive, student.Grade9)
	john := testutil.CreateStudent(t, svc, "John", "Smith", "john@school.cd", student.StatusActive, student.Grade10)
	amy := testutil.CreateStudent(t, svc, "Amy", "Adams", "amy@school.cd", student.StatusInactive, student.Grade9)

	got, err := svc.Query(ctx, student.QueryFilter{Grade: student.Grade9}, []core.Ordering{{Field: "name", Ascending: true}})
	require.NoError(t, err)
	assert.Equal(t, []student.Student{amy, jane}, got)

	got, err = svc.Query(ctx, student.QueryFilter{Search: "SMITH"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []student.Student{john}, got)
}

func TestFilter(t *testing.T) {
	students := []student.Student{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@school.cd", Status: student.StatusActive, Grade: student.Grade9},
		{ID: 2, FirstName: "John", LastName: "Smith", Email: "js@school.cd", Status: student.StatusInactive, Grade: student.Grade10},
		{ID: 3, FirstName: "Amy", LastName: "Doel", Email: "amy@mail.cd", Status: student.StatusActive, Grade: student.Grade10},
	}
	ids := func(ss []student.Student) []int {
		res := make([]int, 0, len(ss))
		for _, s := range ss {
			res = append(res, s.ID)
		}
		return res
	}

	tests := []struct {
		name   string
		filter student.QueryFilter
		want   []int
	}{
		{name: "no filter", filter: student.QueryFilter{Status: core.FilterAll, Grade: core.FilterAll}, want: []int{1, 2, 3}},
		{name: "search full name", filter: student.QueryFilter{Search: "jane d"}, want: []int{1}},
		{name: "search email", filter: student.QueryFilter{Search: "@SCHOOL"}, want: []int{1, 2}},
		{name: "search keeps order", filter: student.QueryFilter{Search: "doe"}, want: []int{1, 3}},
		{name: "status", filter: student.QueryFilter{Status: student.StatusActive}, want: []int{1, 3}},
		{name: "grade", filter: student.QueryFilter{Grade: student.Grade10}, want: []int{2, 3}},
		{name: "and composition", filter: student.QueryFilter{Search: "doe", Status: student.StatusActive, Grade: student.Grade10}, want: []int{3}},
		{name: "no match", filter: student.QueryFilter{Search: "lol"}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := student.Filter(students, tt.filter)
			assert.Equal(t, tt.want, ids(got))

			// idempotent
			assert.Equal(t, got, student.Filter(got, tt.filter))

			// a stricter filter keeps a subset of the result
			narrower := tt.filter
			narrower.Search += "z"
			assert.Subset(t, ids(got), ids(student.Filter(students, narrower)))
			if !core.IsFilterSet(tt.filter.Status) {
				stricter := tt.filter
				stricter.Status = student.StatusActive
				assert.Subset(t, ids(got), ids(student.Filter(students, stricter)))
			}
			if !core.IsFilterSet(tt.filter.Grade) {
				stricter := tt.filter
				stricter.Grade = student.Grade10
				assert.Subset(t, ids(got), ids(student.Filter(students, stricter)))
			}
		})
	}
}

func TestForm(t *testing.T) {
	f := student.NewForm()
	assert.Equal(t, student.StatusActive, f.Status)
	assert.Equal(t, student.Grade9, f.Grade)
	assert.Equal(t, f, student.ToForm(nil))

	score := 72
	s := student.Student{
		ID: 4, FirstName: "Jane", LastName: "Doe", Email: "jane@school.cd", DateOfBirth: "2008-03-14",
		Status: student.StatusActive, Grade: student.Grade12, Score: &score,
	}
	f = student.ToForm(&s)
	assert.Equal(t, "72", f.Score)

	p, err := f.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, student.Payload{
		FirstName: "Jane", LastName: "Doe", Email: "jane@school.cd", DateOfBirth: "2008-03-14",
		Status: student.StatusActive, Grade: student.Grade12, Score: &score,
	}, p)

	f.Score = ""
	p, err = f.ToPayload()
	require.NoError(t, err)
	assert.Nil(t, p.Score)

	f.Score = "lots"
	_, err = f.ToPayload()
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "ToPayload() error = %v; want *core.ValidationError", err)
	assert.Equal(t, []core.FieldError{{Field: "score", Error: "score must be a whole number"}}, vErr.Fields)
}

func TestPayload_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()
	valid := func() student.Payload {
		return student.Payload{
			FirstName: " Jane ", LastName: "Doe", Email: " JANE@School.cd ",
			Status: student.StatusActive, Grade: student.Grade9, DateOfBirth: "2008-03-14",
		}
	}

	p := valid()
	require.NoError(t, p.Validate(validate))
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "jane@school.cd", p.Email)

	tests := []struct {
		name      string
		mutate    func(p *student.Payload)
		wantField string
	}{
		{name: "first name required", mutate: func(p *student.Payload) { p.FirstName = "  " }, wantField: "first_name"},
		{name: "email format", mutate: func(p *student.Payload) { p.Email = "lol" }, wantField: "email"},
		{name: "status enum", mutate: func(p *student.Payload) { p.Status = "Expelled" }, wantField: "status"},
		{name: "grade enum", mutate: func(p *student.Payload) { p.Grade = "8th" }, wantField: "grade"},
		{name: "date format", mutate: func(p *student.Payload) { p.DateOfBirth = "14/03/2008" }, wantField: "date_of_birth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate(validate)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "Validate() error = %v; want validator.ValidationErrors", err)
			require.Len(t, vErrs, 1)
			assert.Equal(t, tt.wantField, vErrs[0].Field())
		})
	}
}
