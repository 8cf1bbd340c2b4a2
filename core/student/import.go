package student

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// SheetRow is one data row of an imported roster. Line is the 1-based spreadsheet row.
type SheetRow struct {
	Line int
	Form Form
}

// setters by normalised header name
var sheetColumns = map[string]func(f *Form, v string){
	"first_name":      func(f *Form, v string) { f.FirstName = v },
	"last_name":       func(f *Form, v string) { f.LastName = v },
	"email":           func(f *Form, v string) { f.Email = v },
	"phone":           func(f *Form, v string) { f.Phone = v },
	"date_of_birth":   func(f *Form, v string) { f.DateOfBirth = v },
	"enrollment_date": func(f *Form, v string) { f.EnrollmentDate = v },
	"status":          func(f *Form, v string) { f.Status = v },
	"grade":           func(f *Form, v string) { f.Grade = v },
	"parent_contact":  func(f *Form, v string) { f.ParentContact = v },
	"address":         func(f *Form, v string) { f.Address = v },
	"score":           func(f *Form, v string) { f.Score = v },
}

func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.FieldsFunc(h, func(r rune) bool { return r == ' ' || r == '_' || r == '-' }), "_")
}

// ReadSheet reads students from the first sheet of an xlsx workbook.
// The first row is a header naming the columns ("First Name", "first_name", ...);
// unknown columns are ignored and blank rows skipped. Missing status and grade
// take the defaults of a new student.
func ReadSheet(r io.Reader) ([]SheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}

	setters := make([]func(*Form, string), len(rows[0]))
	known := 0
	for i, h := range rows[0] {
		if set, ok := sheetColumns[headerKey(h)]; ok {
			setters[i] = set
			known++
		}
	}
	if known == 0 {
		return nil, errors.New("header row has no student columns")
	}

	res := make([]SheetRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		form := NewForm()
		blank := true
		for j, v := range row {
			if j >= len(setters) || setters[j] == nil {
				continue
			}
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			setters[j](&form, v)
			blank = false
		}
		if blank {
			continue
		}
		res = append(res, SheetRow{Line: i + 2, Form: form})
	}
	return res, nil
}
