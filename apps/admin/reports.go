package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/report"
)

const reportFilename = "school-report.xlsx"

func (cli *commandLine) export(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating report file")
	}
	if err = cli.reports.Export(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing report file")
	}
	fmt.Fprintf(cli.out, "report written to %s\n", path)
	return nil
}

func (cli *commandLine) mailReport(ctx context.Context, to string) error {
	recipients, err := core.ParseAddressList(to)
	if err != nil {
		return err
	}

	ov, err := cli.reports.Overview(ctx)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err = report.WriteWorkbook(ov, buf); err != nil {
		return err
	}

	msg := &core.EmailMessage{
		To:      recipients,
		Subject: "School report",
		BodyStr: reportSummary(ov),
	}
	if err = msg.Attach(buf, reportFilename, report.ContentTypeXLSX); err != nil {
		return err
	}
	if err = msg.Render(); err != nil {
		return err
	}
	if err = cli.mailSvc.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "sending report")
	}
	fmt.Fprintf(cli.out, "report sent to %s\n", msg.RecipientsString())
	return nil
}

func reportSummary(ov report.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Students: %d (%d active)\n", ov.Students.Total, ov.Students.Active)
	fmt.Fprintf(&b, "Teachers: %d (%d active)\n", ov.Teachers.Total, ov.Teachers.Active)
	fmt.Fprintf(&b, "Classes: %d, %d enrollments, %d students per class on average\n",
		ov.TotalClasses, ov.TotalEnrollments, ov.AverageClassSize)
	b.WriteString("\nThe full report is attached.\n")
	return b.String()
}
