package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// LoadResult is the outcome of loading one CSV source. Rows that could
// not be parsed are counted and described, never fatal.
type LoadResult struct {
	Dataset *Dataset
	Skipped int
	Errors  []string
}

// Load reads a CSV dataset. The first row is the header; column kinds
// are inferred (numeric when every cell parses as a float) unless the
// manifest overrides them. Rows with unparseable cells in numeric
// columns are skipped and reported in the result.
func Load(name string, r io.Reader, m *Manifest) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset %s: file is empty", name)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset %s: failed to read header: %w", name, err)
	}

	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("dataset %s: column %d has an empty name", name, i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("dataset %s: duplicate column %q", name, h)
		}
		seen[h] = true
		names[i] = h
	}

	result := &LoadResult{}

	// First pass: collect aligned rows, dropping ragged ones.
	var raw [][]string
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) != len(names) {
			result.Skipped++
			result.Errors = append(result.Errors,
				fmt.Sprintf("line %d: expected %d fields, got %d", line, len(names), len(record)))
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		raw = append(raw, record)
	}
	if len(raw) == 0 && result.Skipped == 0 {
		return nil, fmt.Errorf("dataset %s: no data rows", name)
	}

	columns, err := resolveColumns(name, names, raw, m)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Name:     name,
		columns:  columns,
		colIndex: make(map[string]int, len(columns)),
		numeric:  make(map[string][]float64),
	}
	for i, c := range columns {
		ds.colIndex[c.Name] = i
	}
	applyManifest(ds, m)

	// Second pass: parse numeric cells, skipping rows that fail.
rows:
	for i, record := range raw {
		parsed := make([]float64, len(columns))
		for j, col := range columns {
			if col.Kind != ColumnKindNumeric {
				continue
			}
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors,
					fmt.Sprintf("line %d: column %q: %q is not numeric", i+2, col.Name, record[j]))
				continue rows
			}
			parsed[j] = v
		}
		ds.rows = append(ds.rows, record)
		for j, col := range columns {
			if col.Kind == ColumnKindNumeric {
				ds.numeric[col.Name] = append(ds.numeric[col.Name], parsed[j])
			}
		}
	}
	if len(ds.rows) == 0 {
		return nil, fmt.Errorf("dataset %s: no loadable rows (%d skipped)", name, result.Skipped)
	}

	if ds.Label != "" {
		if _, ok := ds.Column(ds.Label); !ok {
			return nil, fmt.Errorf("dataset %s: label column %q does not exist", name, ds.Label)
		}
	}

	result.Dataset = ds
	return result, nil
}

// resolveColumns infers each column's kind and applies manifest
// overrides.
func resolveColumns(name string, names []string, raw [][]string, m *Manifest) ([]Column, error) {
	columns := make([]Column, len(names))
	for j, colName := range names {
		kind := ColumnKindNumeric
		for _, record := range raw {
			if _, err := strconv.ParseFloat(record[j], 64); err != nil {
				kind = ColumnKindCategorical
				break
			}
		}
		columns[j] = Column{Name: colName, Title: colName, Kind: kind}
	}

	if m == nil {
		return columns, nil
	}
	for colName, override := range m.Columns {
		idx := -1
		for j, c := range columns {
			if c.Name == colName {
				idx = j
				break
			}
		}
		if idx == -1 {
			return nil, fmt.Errorf("dataset %s: manifest references unknown column %q", name, colName)
		}
		if override.Title != "" {
			columns[idx].Title = override.Title
		}
		if override.Kind != "" {
			kind, err := ColumnKindString(override.Kind)
			if err != nil {
				return nil, fmt.Errorf("dataset %s: column %q: invalid kind %q", name, colName, override.Kind)
			}
			columns[idx].Kind = kind
		}
	}
	return columns, nil
}

func applyManifest(ds *Dataset, m *Manifest) {
	if m != nil {
		if m.Name != "" {
			ds.Name = m.Name
		}
		ds.Title = m.Title
		ds.Description = m.Description
		ds.Source = m.Source
		ds.Label = m.Label
	}
	if ds.Title == "" {
		ds.Title = titleFromName(ds.Name)
	}
}

func titleFromName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
