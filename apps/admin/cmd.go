package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
	students   *student.Service
	teachers   *teacher.Service
	classes    *class.Service
	reports    *report.Service
	mailSvc    core.EmailService
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  token -name NAME          - issue an API token for the operator NAME")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]    - run goose migrations on the postgres record store")
	fmt.Fprintln(cli.out, "                              (up, up-by-one, up-to VERSION, down, down-to VERSION,")
	fmt.Fprintln(cli.out, "                               redo, reset, status, version, create NAME sql, fix)")
	fmt.Fprintln(cli.out, "  seed                      - add sample students, teachers and classes")
	fmt.Fprintln(cli.out, "  import -file ROSTER.xlsx  - create students from a spreadsheet")
	fmt.Fprintln(cli.out, "  export -file REPORT.xlsx  - write the school report workbook")
	fmt.Fprintln(cli.out, "  mailreport -to ADDRESSES  - email the school report workbook")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenName := tokenCmd.String("name", "", "The operator's login name.")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "Path of the .xlsx roster. The first row holds the column names.")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportFile := exportCmd.String("file", "", "Path of the .xlsx file to write.")

	mailCmd := flag.NewFlagSet("mailreport", flag.ExitOnError)
	mailTo := mailCmd.String("to", "", "Comma separated recipients, e.g. \"Jane <jane@school.cd>, john@school.cd\".")

	switch args[1] {
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenName == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenName)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	case "seed":
		return cli.seed(ctx)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importStudents(ctx, *importFile)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportFile == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(ctx, *exportFile)
	case "mailreport":
		if err := mailCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *mailTo == "" {
			mailCmd.Usage()
			return errHelp
		}
		return cli.mailReport(ctx, *mailTo)
	default:
		cli.printUsage()
		return errHelp
	}
}
