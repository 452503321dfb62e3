package importer

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadscore/internal/model"
)

// XLSXOptions selects the worksheet to import.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads prospects from a worksheet whose first row is the header.
// Blank rows are skipped.
func ReadXLSX(path string, opts XLSXOptions) ([]model.Prospect, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("importer: sheet %q has no header row", sheet.Name)
	}

	header := rowToStrings(sheet.Rows[0])
	for i := range header {
		header[i] = normalizeHeader(header[i])
	}

	var prospects []model.Prospect
	for i, r := range sheet.Rows[1:] {
		cells := rowToStrings(r)
		if blank(cells) {
			continue
		}
		p, err := cellsToRow(header, cells).prospect(i + 2)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("importer: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("importer: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(r *xlsx.Row) []string {
	cells := make([]string, len(r.Cells))
	for j, cell := range r.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func cellsToRow(header, cells []string) row {
	var r row
	for i, name := range header {
		if i >= len(cells) {
			break
		}
		v := cells[i]
		switch name {
		case "domain":
			r.Domain = v
		case "company_name":
			r.CompanyName = v
		case "revenue":
			r.Revenue = v
		case "employee_count":
			r.EmployeeCount = v
		case "industry":
			r.Industry = v
		case "country":
			r.Country = v
		case "technologies":
			r.Technologies = v
		}
	}
	return r
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
