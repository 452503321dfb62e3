package importer

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscore/internal/model"
)

// ParseCSV reads prospects from CSV with a header row. Header names are
// matched case-insensitively; unknown columns are ignored.
func ParseCSV(r io.Reader) ([]model.Prospect, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, eris.New("importer: csv has no header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "importer: read csv header")
	}
	for i := range header {
		header[i] = normalizeHeader(header[i])
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, eris.Wrap(err, "importer: init csv decoder")
	}

	var prospects []model.Prospect
	for line := 2; ; line++ {
		var rec row
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", line)
		}
		p, err := rec.prospect(line)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, nil
}

// WriteCSV writes prospects in the layout ParseCSV reads.
func WriteCSV(w io.Writer, prospects []model.Prospect) error {
	rows := make([]row, 0, len(prospects))
	for _, p := range prospects {
		rows = append(rows, fromProspect(p))
	}
	return MarshalCSV(w, rows)
}

// MarshalCSV encodes a slice of csv-tagged structs with a header row.
func MarshalCSV(w io.Writer, v any) error {
	data, err := csvutil.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "importer: marshal csv")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "importer: write csv")
	}
	return nil
}
