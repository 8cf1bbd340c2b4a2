package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/records"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	return logsvc.New("API : ", log.LstdFlags, conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	return logsvc.New("STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile, conf)
}

func newStore(conf *core.Config, loggerParam StoreLoggerParam) (records.Store, storage.Closer) {
	store, closer, err := storage.Open(context.Background(), conf, loggerParam.Logger)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up record store: %v", err), err)
	}
	return store, closer
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newReportService(students *student.Service, teachers *teacher.Service, classes *class.Service) *report.Service {
	return report.NewService(students, teachers, classes)
}

func newDeps(
	validate *validator.Validate,
	translator ut.Translator,
	students *student.Service,
	teachers *teacher.Service,
	classes *class.Service,
	reports *report.Service,
) *echoapi.Deps {
	return &echoapi.Deps{
		Validate:   validate,
		Translator: translator,
		Students:   students,
		Teachers:   teachers,
		Classes:    classes,
		Reports:    reports,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newStore))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(student.NewService))
	must(c.Provide(teacher.NewService))
	must(c.Provide(class.NewService))
	must(c.Provide(newReportService))
	must(c.Provide(newDeps))
	must(c.Provide(echoapi.NewServer))

	if os.Getenv("DIG_VISUALIZE") != "" {
		_ = dig.Visualize(c, os.Stdout)
	}

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
