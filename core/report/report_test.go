package report_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/tests"
)

func TestEnrollmentByGrade(t *testing.T) {
	students := []student.Student{
		{ID: 1, Status: student.StatusActive, Grade: student.Grade9},
		{ID: 2, Status: student.StatusActive, Grade: student.Grade9},
		{ID: 3, Status: student.StatusInactive, Grade: student.Grade10},
	}
	got := report.EnrollmentByGrade(students)
	assert.Equal(t, []report.GradeCount{{Grade: student.Grade9, Count: 2, Width: 100}}, got)

	students = append(students,
		student.Student{ID: 4, Status: student.StatusActive, Grade: student.Grade12},
		student.Student{ID: 5, Status: student.StatusActive, Grade: student.Grade10},
	)
	got = report.EnrollmentByGrade(students)
	assert.Equal(t, []report.GradeCount{
		{Grade: student.Grade10, Count: 1, Width: 50},
		{Grade: student.Grade12, Count: 1, Width: 50},
		{Grade: student.Grade9, Count: 2, Width: 100},
	}, got)

	assert.Empty(t, report.EnrollmentByGrade(nil))
}

func TestTeachersByDepartment(t *testing.T) {
	teachers := []teacher.Teacher{
		{ID: 1, Department: "Science", Status: teacher.StatusActive},
		{ID: 2, Department: "Languages", Status: teacher.StatusActive},
		{ID: 3, Department: "Science", Status: teacher.StatusActive},
		{ID: 4, Department: "Arts", Status: teacher.StatusInactive},
	}
	assert.Equal(t, []report.DepartmentCount{
		{Department: "Science", Count: 2, Width: 100},
		{Department: "Languages", Count: 1, Width: 50},
	}, report.TeachersByDepartment(teachers))
}

func TestStatusCounts(t *testing.T) {
	students := []student.Student{
		{Status: student.StatusActive}, {Status: student.StatusInactive}, {Status: student.StatusActive},
	}
	sc := report.StudentStatus(students)
	assert.Equal(t, report.StatusCount{Total: 3, Active: 2, Inactive: 1}, sc)
	assert.Equal(t, sc.Total, sc.Active+sc.Inactive)

	assert.Equal(t, report.StatusCount{}, report.TeacherStatus(nil))
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		enrolled, capacity int
		want               int
		wantLevel          string
	}{
		{enrolled: 3, capacity: 4, want: 75, wantLevel: report.LevelMedium},
		{enrolled: 9, capacity: 10, want: 90, wantLevel: report.LevelHigh},
		{enrolled: 2, capacity: 3, want: 67, wantLevel: report.LevelLow},
		{enrolled: 5, capacity: 4, want: 125, wantLevel: report.LevelHigh},
		{enrolled: 3, capacity: 0, want: 0, wantLevel: report.LevelLow},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.enrolled, tt.capacity), func(t *testing.T) {
			got := report.Utilization(tt.enrolled, tt.capacity)
			if got != tt.want {
				t.Errorf("Utilization() = %d; want %d", got, tt.want)
			}
			if lvl := report.UtilizationLevel(got); lvl != tt.wantLevel {
				t.Errorf("UtilizationLevel() = %q; want %q", lvl, tt.wantLevel)
			}
		})
	}
}

func TestClassUtilizations(t *testing.T) {
	classes := []class.Class{
		{ID: 1, Name: "A", StudentIDs: core.IDList{1}, Capacity: 4},
		{ID: 2, Name: "B", StudentIDs: core.IDList{10, 11, 12}, Capacity: 4},
		{ID: 3, Name: "C", StudentIDs: core.IDList{1}, Capacity: 4},
		{ID: 4, Name: "D", Capacity: 0},
	}
	got := report.ClassUtilizations(classes)
	ids := make([]int, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int{2, 1, 3, 4}, ids, "highest first, ties keep input order")
	assert.Equal(t, 3, got[0].Enrolled)
	assert.Equal(t, 75, got[0].Utilization)
}

func TestBarWidths(t *testing.T) {
	assert.Empty(t, report.BarWidths(nil))
	assert.Equal(t, []float64{0, 0}, report.BarWidths([]int{0, 0}))
	assert.Equal(t, []float64{25, 100, 50}, report.BarWidths([]int{1, 4, 2}))
}

func TestAggregates(t *testing.T) {
	classes := []class.Class{
		{Subject: "Math", StudentIDs: core.IDList{1, 2}},
		{Subject: "Math", StudentIDs: core.IDList{1}},
		{Subject: "Biology"},
	}
	assert.Equal(t, 3, report.TotalEnrollments(classes))
	assert.Equal(t, 1, report.AverageClassSize(classes))
	assert.Equal(t, 2, report.DistinctSubjects(classes))

	assert.Equal(t, 0, report.AverageClassSize(nil))
	assert.Equal(t, 0, report.TotalEnrollments(nil))
}

func TestNewDashboard(t *testing.T) {
	snap := report.Snapshot{
		Teachers: []teacher.Teacher{{ID: 1, FirstName: "Ada", LastName: "Lovelace", Status: teacher.StatusActive}},
	}
	for i := 1; i <= 8; i++ {
		snap.Classes = append(snap.Classes, class.Class{ID: i, Name: fmt.Sprintf("C%d", i), TeacherID: 1, StudentIDs: core.IDList{i}})
	}
	snap.Classes[7].TeacherID = 42

	d := report.NewDashboard(snap)
	assert.Equal(t, 8, d.TotalClasses)
	assert.Equal(t, 8, d.TotalEnrollments)
	assert.Equal(t, 1, d.ActiveTeachers)
	require.Len(t, d.Classes, report.DashboardClassCount)
	assert.Equal(t, 1, d.Classes[0].ID)
	assert.Equal(t, "Ada Lovelace", d.Classes[0].TeacherName)
	assert.Equal(t, 6, d.Classes[5].ID)
}

type failingLister struct{}

func (failingLister) QueryAll(context.Context) ([]teacher.Teacher, error) {
	return nil, errors.New("service unavailable")
}

func TestService(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	svcs := testutil.NewServices(testutil.NewLogger(conf))

	jane := testutil.CreateStudent(t, svcs.Students, "Jane", "Doe", "jane@school.cd", student.StatusActive, student.Grade9)
	testutil.CreateStudent(t, svcs.Students, "John", "Smith", "john@school.cd", student.StatusActive, student.Grade9)
	ada := testutil.CreateTeacher(t, svcs.Teachers, "Ada", "Lovelace", "ada@school.cd", "Science", teacher.StatusActive, "Math")
	algebra := testutil.CreateClass(t, svcs.Classes, "Algebra", "Math", ada.ID, 4, jane.ID, 99)

	svc := report.NewService(svcs.Students, svcs.Teachers, svcs.Classes)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.StatusCount{Total: 2, Active: 2}, ov.Students)
	assert.Equal(t, []report.GradeCount{{Grade: student.Grade9, Count: 2, Width: 100}}, ov.EnrollmentByGrade)
	assert.Equal(t, 2, ov.TotalEnrollments)
	assert.Equal(t, 2, ov.AverageClassSize)
	require.Len(t, ov.ClassUtilization, 1)
	assert.Equal(t, 50, ov.ClassUtilization[0].Utilization)

	roster, err := svc.Roster(ctx, algebra.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", roster.TeacherName)
	assert.Equal(t, []class.RosterStudent{
		{ID: jane.ID, Name: "Jane Doe", Email: "jane@school.cd", Grade: student.Grade9},
		{ID: 99, Name: class.UnknownStudent},
	}, roster.Students)

	_, err = svc.Roster(ctx, 1000)
	assert.Equal(t, class.ErrNotFound, err)

	// one failing source fails the whole load
	broken := report.NewService(svcs.Students, failingLister{}, svcs.Classes)
	_, err = broken.Dashboard(ctx)
	assert.EqualError(t, err, "loading teachers: service unavailable")
}

func TestService_Export(t *testing.T) {
	conf := testutil.NewConfig()
	svcs := testutil.NewServices(testutil.NewLogger(conf))
	ada := testutil.CreateTeacher(t, svcs.Teachers, "Ada", "Lovelace", "ada@school.cd", "Science", teacher.StatusActive)
	testutil.CreateClass(t, svcs.Classes, "Algebra", "Math", ada.ID, 4, 10, 11, 12)

	buf := new(bytes.Buffer)
	svc := report.NewService(svcs.Students, svcs.Teachers, svcs.Classes)
	require.NoError(t, svc.Export(context.Background(), buf))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetOverview, report.SheetGrades, report.SheetDepartments, report.SheetClasses}, f.GetSheetList())

	rows, err := f.GetRows(report.SheetClasses)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Algebra", "Math", "3", "4", "75", report.LevelMedium}, rows[1])

	rows, err = f.GetRows(report.SheetDepartments)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Department", "Active teachers"}, {"Science", "1"}}, rows)
}
