package importer

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscore/internal/model"
)

// defaultCategory is assigned to technology entries written without one.
const defaultCategory = "other"

// row is the flat tabular layout shared by CSV and XLSX imports. Every cell
// is read as text so blanks stay distinguishable from zero.
type row struct {
	Domain        string `csv:"domain"`
	CompanyName   string `csv:"company_name"`
	Revenue       string `csv:"revenue"`
	EmployeeCount string `csv:"employee_count"`
	Industry      string `csv:"industry"`
	Country       string `csv:"country"`
	Technologies  string `csv:"technologies"`
}

// columnAliases maps alternative header spellings onto row's column names.
var columnAliases = map[string]string{
	"website":        "domain",
	"url":            "domain",
	"company":        "company_name",
	"name":           "company_name",
	"annual_revenue": "revenue",
	"employees":      "employee_count",
	"headcount":      "employee_count",
	"tech_stack":     "technologies",
	"tech":           "technologies",
}

// normalizeHeader lowercases a header cell and folds spaces and dashes into
// underscores, then resolves known aliases.
func normalizeHeader(h string) string {
	key := strings.ToLower(strings.TrimSpace(h))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}

// prospect converts the row. line is the 1-based source line used in errors.
func (r row) prospect(line int) (model.Prospect, error) {
	p := model.Prospect{
		Domain:      strings.TrimSpace(r.Domain),
		CompanyName: strings.TrimSpace(r.CompanyName),
	}

	if v := strings.TrimSpace(r.Revenue); v != "" {
		rev, err := parseAmount(v)
		if err != nil {
			return p, eris.Errorf("importer: row %d: invalid revenue %q", line, r.Revenue)
		}
		p.Revenue = &rev
	}

	if v := strings.TrimSpace(r.EmployeeCount); v != "" {
		n, err := parseCount(v)
		if err != nil {
			return p, eris.Errorf("importer: row %d: invalid employee_count %q", line, r.EmployeeCount)
		}
		p.EmployeeCount = &n
	}

	if v := strings.TrimSpace(r.Industry); v != "" {
		p.Industry = &v
	}
	if v := strings.TrimSpace(r.Country); v != "" {
		p.Country = &v
	}

	p.Technologies = parseTechnologies(r.Technologies)
	return p, nil
}

// maxCount bounds parsed headcounts.
const maxCount = math.MaxInt32

// parseAmount reads a currency amount such as "$1,250,000" or "2.5M". The
// result must be finite and non-negative.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	mult := 1.0
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'k', 'K':
			mult, s = 1e3, s[:n-1]
		case 'm', 'M':
			mult, s = 1e6, s[:n-1]
		case 'b', 'B':
			mult, s = 1e9, s[:n-1]
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	v *= mult
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.New("amount is not finite")
	}
	if v < 0 {
		return 0, eris.New("amount is negative")
	}
	return v, nil
}

// parseCount reads a headcount in [0, maxCount]. Fractional values are
// truncated.
func parseCount(s string) (int, error) {
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, eris.New("count is not finite")
	}
	if f < 0 {
		return 0, eris.New("count is negative")
	}
	if f > maxCount {
		return 0, eris.Errorf("count exceeds %d", maxCount)
	}
	return int(f), nil
}

// parseTechnologies reads "name:category;name:category". Entries without a
// category land in defaultCategory.
func parseTechnologies(s string) []model.Technology {
	var out []model.Technology
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, category, found := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		category = strings.TrimSpace(category)
		if name == "" {
			continue
		}
		if !found || category == "" {
			category = defaultCategory
		}
		out = append(out, model.Technology{Name: name, Category: category})
	}
	return out
}

// formatTechnologies is the inverse of parseTechnologies.
func formatTechnologies(techs []model.Technology) string {
	parts := make([]string, 0, len(techs))
	for _, t := range techs {
		parts = append(parts, t.Name+":"+t.Category)
	}
	return strings.Join(parts, ";")
}

func fromProspect(p model.Prospect) row {
	r := row{
		Domain:       p.Domain,
		CompanyName:  p.CompanyName,
		Technologies: formatTechnologies(p.Technologies),
	}
	if p.Revenue != nil {
		r.Revenue = strconv.FormatFloat(*p.Revenue, 'f', -1, 64)
	}
	if p.EmployeeCount != nil {
		r.EmployeeCount = strconv.Itoa(*p.EmployeeCount)
	}
	if p.Industry != nil {
		r.Industry = *p.Industry
	}
	if p.Country != nil {
		r.Country = *p.Country
	}
	return r
}
