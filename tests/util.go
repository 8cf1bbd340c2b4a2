package testutil

import (
	"context"
	"log"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	logsvc "github.com/trezcool/shule/services/logger"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

// Services bundles the entity services over one in-memory store.
type Services struct {
	DB       *inmemdb.DB
	Students *student.Service
	Teachers *teacher.Service
	Classes  *class.Service
}

func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Server.DisableReqLogs = true
	return conf
}

func NewLogger(conf *core.Config) core.Logger {
	return logsvc.New("TEST : ", log.LstdFlags, conf)
}

// NewValidator returns a validator whose translations are registered on the returned translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

func NewServices(logger core.Logger) *Services {
	db := inmemdb.Open()
	return &Services{
		DB:       db,
		Students: student.NewService(db, logger),
		Teachers: teacher.NewService(db, logger),
		Classes:  class.NewService(db, logger),
	}
}

func CreateStudent(t *testing.T, svc *student.Service, first, last, email, status, grade string) student.Student {
	t.Helper()
	s, err := svc.Create(context.Background(), student.Payload{
		FirstName:      first,
		LastName:       last,
		Email:          email,
		Status:         status,
		Grade:          grade,
		EnrollmentDate: "2023-09-01",
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if s == nil {
		t.Fatal("CreateStudent() failed: record rejected")
	}
	return *s
}

func CreateTeacher(t *testing.T, svc *teacher.Service, first, last, email, department, status string, subjects ...string) teacher.Teacher {
	t.Helper()
	tch, err := svc.Create(context.Background(), teacher.Payload{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Department: department,
		Status:     status,
		Subjects:   subjects,
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	if tch == nil {
		t.Fatal("CreateTeacher() failed: record rejected")
	}
	return *tch
}

func CreateClass(t *testing.T, svc *class.Service, name, subject string, teacherID, capacity int, studentIDs ...int) class.Class {
	t.Helper()
	c, err := svc.Create(context.Background(), class.Payload{
		Name:       name,
		Subject:    subject,
		TeacherID:  core.RelationID(teacherID),
		StudentIDs: core.IDList(studentIDs),
		Schedule:   "Mon/Wed 09:00",
		Room:       "R-" + name,
		Capacity:   capacity,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	if c == nil {
		t.Fatal("CreateClass() failed: record rejected")
	}
	return *c
}
