package report

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
)

type (
	StudentLister interface {
		QueryAll(ctx context.Context) ([]student.Student, error)
	}

	TeacherLister interface {
		QueryAll(ctx context.Context) ([]teacher.Teacher, error)
	}

	ClassLister interface {
		QueryAll(ctx context.Context) ([]class.Class, error)
	}
)

type Service struct {
	students StudentLister
	teachers TeacherLister
	classes  ClassLister
}

func NewService(students StudentLister, teachers TeacherLister, classes ClassLister) *Service {
	return &Service{students: students, teachers: teachers, classes: classes}
}

// Load fetches every entity kind concurrently and waits for all of them.
// Any failure fails the whole load; partial snapshots are never returned.
func (svc *Service) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		students, err := svc.students.QueryAll(gctx)
		if err != nil {
			return errors.Wrap(err, "loading students")
		}
		snap.Students = students
		return nil
	})
	g.Go(func() error {
		teachers, err := svc.teachers.QueryAll(gctx)
		if err != nil {
			return errors.Wrap(err, "loading teachers")
		}
		snap.Teachers = teachers
		return nil
	})
	g.Go(func() error {
		classes, err := svc.classes.QueryAll(gctx)
		if err != nil {
			return errors.Wrap(err, "loading classes")
		}
		snap.Classes = classes
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (svc *Service) Overview(ctx context.Context) (Overview, error) {
	snap, err := svc.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	return NewOverview(snap), nil
}

func (svc *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	snap, err := svc.Load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return NewDashboard(snap), nil
}

// Roster loads the class with its teacher and students resolved.
func (svc *Service) Roster(ctx context.Context, classID int) (class.Roster, error) {
	snap, err := svc.Load(ctx)
	if err != nil {
		return class.Roster{}, err
	}
	return snap.Roster(classID)
}
