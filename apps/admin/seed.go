package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
)

var (
	seedTeachers = []teacher.Payload{
		{FirstName: "Amani", LastName: "Mwamba", Email: "amani.mwamba@shule.cd", Subjects: []string{"Mathematics", "Physics"}, HireDate: "2015-08-24", Department: "Science", Status: teacher.StatusActive},
		{FirstName: "Grace", LastName: "Kabila", Email: "grace.kabila@shule.cd", Subjects: []string{"English", "French"}, HireDate: "2018-01-08", Department: "Languages", Status: teacher.StatusActive},
		{FirstName: "Josue", LastName: "Ilunga", Email: "josue.ilunga@shule.cd", Subjects: []string{"History"}, HireDate: "2012-09-03", Department: "Humanities", Status: teacher.StatusInactive},
	}

	seedStudents = []student.Payload{
		{FirstName: "Neema", LastName: "Tshala", Email: "neema.tshala@shule.cd", DateOfBirth: "2009-03-14", EnrollmentDate: "2023-09-04", Status: student.StatusActive, Grade: student.Grade9},
		{FirstName: "Baraka", LastName: "Mbuyi", Email: "baraka.mbuyi@shule.cd", DateOfBirth: "2008-11-02", EnrollmentDate: "2022-09-05", Status: student.StatusActive, Grade: student.Grade10},
		{FirstName: "Rehema", LastName: "Kasongo", Email: "rehema.kasongo@shule.cd", DateOfBirth: "2007-06-21", EnrollmentDate: "2021-09-06", Status: student.StatusActive, Grade: student.Grade11},
		{FirstName: "Tumaini", LastName: "Lukusa", Email: "tumaini.lukusa@shule.cd", DateOfBirth: "2006-01-30", EnrollmentDate: "2020-09-07", Status: student.StatusInactive, Grade: student.Grade12},
	}
)

// seed adds sample records. Classes reference the teachers and students created before them.
func (cli *commandLine) seed(ctx context.Context) error {
	teacherIDs := make([]int, 0, len(seedTeachers))
	for _, p := range seedTeachers {
		if err := p.Validate(cli.validate); err != nil {
			return errors.Wrapf(err, "seeding teacher %s", p.Email)
		}
		t, err := cli.teachers.Create(ctx, p)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.Errorf("seeding teacher %s: rejected", p.Email)
		}
		teacherIDs = append(teacherIDs, t.ID)
	}

	studentIDs := make(core.IDList, 0, len(seedStudents))
	for _, p := range seedStudents {
		if err := p.Validate(cli.validate); err != nil {
			return errors.Wrapf(err, "seeding student %s", p.Email)
		}
		s, err := cli.students.Create(ctx, p)
		if err != nil {
			return err
		}
		if s == nil {
			return errors.Errorf("seeding student %s: rejected", p.Email)
		}
		studentIDs = append(studentIDs, s.ID)
	}

	seedClasses := []class.Payload{
		{Name: "Algebra I", Subject: "Mathematics", TeacherID: core.RelationID(teacherIDs[0]), StudentIDs: studentIDs[:3], Schedule: "Mon/Wed 08:00", Room: "S-101", Capacity: 4},
		{Name: "Physics Lab", Subject: "Physics", TeacherID: core.RelationID(teacherIDs[0]), StudentIDs: studentIDs[1:2], Schedule: "Fri 10:00", Room: "LAB-2", Capacity: 12},
		{Name: "English Literature", Subject: "English", TeacherID: core.RelationID(teacherIDs[1]), StudentIDs: studentIDs, Schedule: "Tue/Thu 09:30", Room: "L-204", Capacity: 4},
	}
	for _, p := range seedClasses {
		if err := p.Validate(cli.validate); err != nil {
			return errors.Wrapf(err, "seeding class %s", p.Name)
		}
		c, err := cli.classes.Create(ctx, p)
		if err != nil {
			return err
		}
		if c == nil {
			return errors.Errorf("seeding class %s: rejected", p.Name)
		}
	}

	fmt.Fprintf(cli.out, "seeded %d teachers, %d students and %d classes\n", len(seedTeachers), len(seedStudents), len(seedClasses))
	return nil
}
