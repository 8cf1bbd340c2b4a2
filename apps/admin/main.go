package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.New("ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile, conf)

	// set up the record store
	store, closeStore, err := storage.Open(context.Background(), conf, logger)
	if err != nil {
		logger.Fatal("setting up record store", err)
	}

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)

	students := student.NewService(store, logger)
	teachers := teacher.NewService(store, logger)
	classes := class.NewService(store, logger)

	// start CLI
	cli := commandLine{
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		students:   students,
		teachers:   teachers,
		classes:    classes,
		reports:    report.NewService(students, teachers, classes),
		mailSvc:    emailsvc.New(conf, logger),
		out:        os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := closeStore(); cErr != nil {
		logger.Error("closing record store", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
