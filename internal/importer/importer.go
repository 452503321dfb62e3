// Package importer reads prospect lists from JSON, YAML, CSV and XLSX files.
package importer

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscore/internal/model"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// prospectFile is the wrapped document form: {"prospects": [...]}.
type prospectFile struct {
	Prospects []model.Prospect `json:"prospects" yaml:"prospects"`
}

// DetectFormat maps a file extension to a format name.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("importer: unsupported file type %q", filepath.Ext(path))
	}
}

// Options tunes how a file is read.
type Options struct {
	// Charset names the text encoding of CSV, JSON and YAML input (for example
	// "windows-1252"). Empty means UTF-8.
	Charset string
	Sheet   XLSXOptions
}

// Load reads prospects from path, choosing the parser by extension.
func Load(path string) ([]model.Prospect, error) {
	return LoadWith(path, Options{})
}

// LoadWith is Load with explicit options.
func LoadWith(path string, opts Options) ([]model.Prospect, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var prospects []model.Prospect
	if format == FormatXLSX {
		prospects, err = ReadXLSX(path, opts.Sheet)
	} else {
		prospects, err = loadText(path, format, opts.Charset)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Debug("importer: loaded prospects",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("count", len(prospects)),
	)
	return prospects, nil
}

func loadText(path, format, charset string) ([]model.Prospect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read %s", path)
	}
	defer f.Close() //nolint:errcheck

	r, err := DecodeCharset(charset, f)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV {
		return ParseCSV(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read %s", path)
	}
	if format == FormatYAML {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// DecodeCharset wraps r so it yields UTF-8. An empty or UTF-8 charset
// returns r unchanged.
func DecodeCharset(charset string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(r), nil
}

// ParseJSON accepts either a bare array of prospects or a {"prospects": [...]}
// document.
func ParseJSON(data []byte) ([]model.Prospect, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, eris.New("importer: empty json document")
	}

	if trimmed[0] == '[' {
		var list []model.Prospect
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, eris.Wrap(err, "importer: parse json")
		}
		return checkProspects(list)
	}

	var f prospectFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, eris.Wrap(err, "importer: parse json")
	}
	if f.Prospects == nil {
		return nil, eris.New("importer: json document has no prospects key")
	}
	return checkProspects(f.Prospects)
}

// ParseYAML accepts the same two layouts as ParseJSON.
func ParseYAML(data []byte) ([]model.Prospect, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, eris.Wrap(err, "importer: parse yaml")
	}
	if len(node.Content) == 0 {
		return nil, eris.New("importer: empty yaml document")
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var list []model.Prospect
		if err := node.Content[0].Decode(&list); err != nil {
			return nil, eris.Wrap(err, "importer: decode yaml prospects")
		}
		return checkProspects(list)
	}

	var f prospectFile
	if err := node.Content[0].Decode(&f); err != nil {
		return nil, eris.Wrap(err, "importer: decode yaml prospects")
	}
	if f.Prospects == nil {
		return nil, eris.New("importer: yaml document has no prospects key")
	}
	return checkProspects(f.Prospects)
}

// checkProspects rejects decoded firmographics that the tabular parsers
// would refuse: non-finite or negative revenue and negative headcount.
func checkProspects(list []model.Prospect) ([]model.Prospect, error) {
	for i, p := range list {
		if p.Revenue != nil {
			if v := *p.Revenue; math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, eris.Errorf("importer: prospect %d: invalid revenue %v", i+1, v)
			}
		}
		if p.EmployeeCount != nil && *p.EmployeeCount < 0 {
			return nil, eris.Errorf("importer: prospect %d: invalid employee_count %d", i+1, *p.EmployeeCount)
		}
	}
	return list, nil
}
