package report

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetOverview    = "Overview"
	SheetGrades      = "Enrollment by grade"
	SheetDepartments = "Teachers by department"
	SheetClasses     = "Class utilization"
)

// ContentTypeXLSX is the media type of exported workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export loads a fresh overview and writes it to w as an xlsx workbook.
func (svc *Service) Export(ctx context.Context, w io.Writer) error {
	ov, err := svc.Overview(ctx)
	if err != nil {
		return err
	}
	return WriteWorkbook(ov, w)
}

// WriteWorkbook renders one sheet per section of the overview.
func WriteWorkbook(ov Overview, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetOverview); err != nil {
		return errors.Wrap(err, "renaming default sheet")
	}

	overview := [][]interface{}{
		{"Metric", "Value"},
		{"Total students", ov.Students.Total},
		{"Active students", ov.Students.Active},
		{"Inactive students", ov.Students.Inactive},
		{"Total teachers", ov.Teachers.Total},
		{"Active teachers", ov.Teachers.Active},
		{"Total classes", ov.TotalClasses},
		{"Total enrollments", ov.TotalEnrollments},
		{"Average class size", ov.AverageClassSize},
		{"Subjects", ov.DistinctSubjects},
	}
	if err := writeRows(f, SheetOverview, overview); err != nil {
		return err
	}

	grades := [][]interface{}{{"Grade", "Active students"}}
	for _, g := range ov.EnrollmentByGrade {
		grades = append(grades, []interface{}{g.Grade, g.Count})
	}
	if err := addSheet(f, SheetGrades, grades); err != nil {
		return err
	}

	depts := [][]interface{}{{"Department", "Active teachers"}}
	for _, d := range ov.TeachersByDepartment {
		depts = append(depts, []interface{}{d.Department, d.Count})
	}
	if err := addSheet(f, SheetDepartments, depts); err != nil {
		return err
	}

	classes := [][]interface{}{{"Class", "Subject", "Enrolled", "Capacity", "Utilization (%)", "Level"}}
	for _, c := range ov.ClassUtilization {
		classes = append(classes, []interface{}{c.Name, c.Subject, c.Enrolled, c.Capacity, c.Utilization, c.Level})
	}
	if err := addSheet(f, SheetClasses, classes); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return errors.Wrap(f.Write(w), "writing workbook")
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(err, "creating sheet %q", name)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.Wrapf(err, "writing %s!%s", sheet, cell)
		}
	}
	return nil
}
