// Package report derives the statistics shown on the dashboard and reports pages.
package report

import (
	"math"
	"sort"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
)

// Utilization levels
const (
	LevelHigh   = "high"   // >= 90%
	LevelMedium = "medium" // >= 70%
	LevelLow    = "low"
)

// DashboardClassCount is the number of classes previewed on the dashboard.
const DashboardClassCount = 6

type (
	StatusCount struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
	}

	GradeCount struct {
		Grade string  `json:"grade"`
		Count int     `json:"count"`
		Width float64 `json:"width"` // bar width, percent of the largest group
	}

	DepartmentCount struct {
		Department string  `json:"department"`
		Count      int     `json:"count"`
		Width      float64 `json:"width"`
	}

	ClassUtilization struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Subject     string `json:"subject"`
		Enrolled    int    `json:"enrolled"`
		Capacity    int    `json:"capacity"`
		Utilization int    `json:"utilization"` // percent
		Level       string `json:"level"`
	}
)

// StudentStatus counts students by status.
func StudentStatus(students []student.Student) StatusCount {
	sc := StatusCount{Total: len(students)}
	for _, s := range students {
		if s.IsActive() {
			sc.Active++
		}
	}
	sc.Inactive = sc.Total - sc.Active
	return sc
}

// TeacherStatus counts teachers by status.
func TeacherStatus(teachers []teacher.Teacher) StatusCount {
	sc := StatusCount{Total: len(teachers)}
	for _, t := range teachers {
		if t.IsActive() {
			sc.Active++
		}
	}
	sc.Inactive = sc.Total - sc.Active
	return sc
}

// EnrollmentByGrade counts active students per grade, ordered by grade label.
func EnrollmentByGrade(students []student.Student) []GradeCount {
	counts := make(map[string]int)
	for _, s := range students {
		if s.IsActive() {
			counts[s.Grade]++
		}
	}
	grades := make([]string, 0, len(counts))
	for g := range counts {
		grades = append(grades, g)
	}
	sort.Strings(grades)

	values := make([]int, 0, len(grades))
	for _, g := range grades {
		values = append(values, counts[g])
	}
	widths := BarWidths(values)

	res := make([]GradeCount, 0, len(grades))
	for i, g := range grades {
		res = append(res, GradeCount{Grade: g, Count: counts[g], Width: widths[i]})
	}
	return res
}

// TeachersByDepartment counts active teachers per department, in first-seen order.
func TeachersByDepartment(teachers []teacher.Teacher) []DepartmentCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, t := range teachers {
		if !t.IsActive() {
			continue
		}
		if _, ok := counts[t.Department]; !ok {
			order = append(order, t.Department)
		}
		counts[t.Department]++
	}

	values := make([]int, 0, len(order))
	for _, d := range order {
		values = append(values, counts[d])
	}
	widths := BarWidths(values)

	res := make([]DepartmentCount, 0, len(order))
	for i, d := range order {
		res = append(res, DepartmentCount{Department: d, Count: counts[d], Width: widths[i]})
	}
	return res
}

// Utilization is the rounded percentage of capacity taken. A class without capacity is at 0%.
func Utilization(enrolled, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(enrolled) / float64(capacity) * 100))
}

func UtilizationLevel(pct int) string {
	switch {
	case pct >= 90:
		return LevelHigh
	case pct >= 70:
		return LevelMedium
	}
	return LevelLow
}

// ClassUtilizations lists the utilization of every class, highest first.
// Classes with the same utilization keep their input order.
func ClassUtilizations(classes []class.Class) []ClassUtilization {
	res := make([]ClassUtilization, 0, len(classes))
	for _, c := range classes {
		pct := Utilization(c.EnrolledCount(), c.Capacity)
		res = append(res, ClassUtilization{
			ID:          c.ID,
			Name:        c.Name,
			Subject:     c.Subject,
			Enrolled:    c.EnrolledCount(),
			Capacity:    c.Capacity,
			Utilization: pct,
			Level:       UtilizationLevel(pct),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Utilization > res[j].Utilization })
	return res
}

// BarWidths scales counts to percentages of the largest one.
func BarWidths(counts []int) []float64 {
	widths := make([]float64, len(counts))
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return widths
	}
	for i, c := range counts {
		widths[i] = float64(c) / float64(max) * 100
	}
	return widths
}

// TotalEnrollments sums the enrolled students of all classes.
func TotalEnrollments(classes []class.Class) int {
	var total int
	for _, c := range classes {
		total += c.EnrolledCount()
	}
	return total
}

// AverageClassSize is the rounded mean enrollment, 0 without classes.
func AverageClassSize(classes []class.Class) int {
	if len(classes) == 0 {
		return 0
	}
	return int(math.Round(float64(TotalEnrollments(classes)) / float64(len(classes))))
}

// DistinctSubjects counts the distinct subjects taught.
func DistinctSubjects(classes []class.Class) int {
	return len(class.Subjects(classes))
}

// Snapshot holds one consistent load of every entity kind.
type Snapshot struct {
	Students []student.Student
	Teachers []teacher.Teacher
	Classes  []class.Class
}

type Overview struct {
	Students             StatusCount        `json:"students"`
	Teachers             StatusCount        `json:"teachers"`
	TotalClasses         int                `json:"total_classes"`
	TotalEnrollments     int                `json:"total_enrollments"`
	AverageClassSize     int                `json:"average_class_size"`
	DistinctSubjects     int                `json:"distinct_subjects"`
	EnrollmentByGrade    []GradeCount       `json:"enrollment_by_grade"`
	TeachersByDepartment []DepartmentCount  `json:"teachers_by_department"`
	ClassUtilization     []ClassUtilization `json:"class_utilization"`
}

func NewOverview(snap Snapshot) Overview {
	return Overview{
		Students:             StudentStatus(snap.Students),
		Teachers:             TeacherStatus(snap.Teachers),
		TotalClasses:         len(snap.Classes),
		TotalEnrollments:     TotalEnrollments(snap.Classes),
		AverageClassSize:     AverageClassSize(snap.Classes),
		DistinctSubjects:     DistinctSubjects(snap.Classes),
		EnrollmentByGrade:    EnrollmentByGrade(snap.Students),
		TeachersByDepartment: TeachersByDepartment(snap.Teachers),
		ClassUtilization:     ClassUtilizations(snap.Classes),
	}
}

type (
	ClassCard struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Subject     string `json:"subject"`
		Schedule    string `json:"schedule"`
		Room        string `json:"room"`
		TeacherName string `json:"teacher_name"`
		Enrolled    int    `json:"enrolled"`
		Capacity    int    `json:"capacity"`
	}

	Dashboard struct {
		ActiveStudents   int         `json:"active_students"`
		ActiveTeachers   int         `json:"active_teachers"`
		TotalClasses     int         `json:"total_classes"`
		TotalEnrollments int         `json:"total_enrollments"`
		Classes          []ClassCard `json:"classes"`
	}
)

func NewDashboard(snap Snapshot) Dashboard {
	d := Dashboard{
		ActiveStudents:   StudentStatus(snap.Students).Active,
		ActiveTeachers:   TeacherStatus(snap.Teachers).Active,
		TotalClasses:     len(snap.Classes),
		TotalEnrollments: TotalEnrollments(snap.Classes),
		Classes:          make([]ClassCard, 0, DashboardClassCount),
	}
	for i, c := range snap.Classes {
		if i == DashboardClassCount {
			break
		}
		d.Classes = append(d.Classes, ClassCard{
			ID:          c.ID,
			Name:        c.Name,
			Subject:     c.Subject,
			Schedule:    c.Schedule,
			Room:        c.Room,
			TeacherName: class.TeacherName(snap.Teachers, c.TeacherID),
			Enrolled:    c.EnrolledCount(),
			Capacity:    c.Capacity,
		})
	}
	return d
}

// Roster resolves the references of one class of the snapshot.
func (snap Snapshot) Roster(classID int) (class.Roster, error) {
	for _, c := range snap.Classes {
		if c.ID == classID {
			return class.NewRoster(c, snap.Teachers, snap.Students), nil
		}
	}
	return class.Roster{}, class.ErrNotFound
}
