package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

// importStudents creates a student per spreadsheet row. Invalid or rejected rows are logged and skipped.
func (cli *commandLine) importStudents(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening roster")
	}
	defer f.Close()

	rows, err := student.ReadSheet(f)
	if err != nil {
		return err
	}

	var created, skipped int
	for _, row := range rows {
		if err := cli.importRow(ctx, row); err != nil {
			extra := map[string]interface{}{"line": row.Line}
			if vErrs, ok := errors.Cause(err).(validator.ValidationErrors); ok {
				extra["fields"] = core.TranslateErrors(vErrs, cli.translator)
			}
			cli.logger.Warn(fmt.Sprintf("row %d skipped: %v", row.Line, err), extra)
			skipped++
			continue
		}
		created++
	}
	fmt.Fprintf(cli.out, "%d student(s) imported, %d row(s) skipped\n", created, skipped)
	return nil
}

func (cli *commandLine) importRow(ctx context.Context, row student.SheetRow) error {
	data, err := row.Form.ToPayload()
	if err != nil {
		return err
	}
	if err = data.Validate(cli.validate); err != nil {
		return err
	}
	s, err := cli.students.Create(ctx, data)
	if err != nil {
		return err
	}
	if s == nil {
		return errors.New("record store rejected the student")
	}
	return nil
}
