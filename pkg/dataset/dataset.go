package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotFound is returned when a registry has no dataset by the
	// requested name.
	ErrNotFound = errors.New("dataset not found")

	// ErrColumnNotFound is returned for references to columns a
	// dataset does not have.
	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnNotNumeric is returned when a categorical column is
	// used where a numeric one is required.
	ErrColumnNotNumeric = errors.New("column is not numeric")
)

// suggestMaxDistance bounds how far a "did you mean" match may be.
const suggestMaxDistance = 3

// Column describes one dataset column.
type Column struct {
	Name  string     `json:"name"`
	Title string     `json:"title"`
	Kind  ColumnKind `json:"kind"`
}

// Dataset is an immutable, in-memory table. Rows that failed to load
// are excluded; see LoadResult for what was dropped.
type Dataset struct {
	Name        string
	Title       string
	Description string
	Source      string
	Label       string

	columns  []Column
	colIndex map[string]int
	rows     [][]string
	numeric  map[string][]float64
}

// Columns returns the column descriptions in file order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// NumericColumns returns only the columns usable for plotting and
// clustering, in file order.
func (d *Dataset) NumericColumns() []Column {
	var out []Column
	for _, c := range d.columns {
		if c.Kind == ColumnKindNumeric {
			out = append(out, c)
		}
	}
	return out
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.colIndex[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Rows returns the number of loaded rows.
func (d *Dataset) Rows() int {
	return len(d.rows)
}

// Records returns a page of rows as JSON-ready maps: float64 for
// numeric columns, string otherwise. Offsets beyond the data yield an
// empty page; a non-positive limit means the rest of the rows.
func (d *Dataset) Records(offset, limit int) []map[string]any {
	n := len(d.rows)
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}

	records := make([]map[string]any, 0, end-offset)
	for i := offset; i < end; i++ {
		rec := make(map[string]any, len(d.columns))
		for j, col := range d.columns {
			if col.Kind == ColumnKindNumeric {
				rec[col.Name] = d.numeric[col.Name][i]
			} else {
				rec[col.Name] = d.rows[i][j]
			}
		}
		records = append(records, rec)
	}
	return records
}

// Values returns the parsed values of a numeric column.
func (d *Dataset) Values(name string) ([]float64, error) {
	col, ok := d.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	if col.Kind != ColumnKindNumeric {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotNumeric, name)
	}
	return d.numeric[name], nil
}

// Matrix assembles the requested numeric columns into a samples-by-
// features matrix for clustering.
func (d *Dataset) Matrix(features []string) (*mat.Dense, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("no feature columns requested")
	}

	cols := make([][]float64, len(features))
	for i, name := range features {
		values, err := d.Values(name)
		if err != nil {
			return nil, err
		}
		cols[i] = values
	}

	n := len(d.rows)
	data := make([]float64, n*len(features))
	for i := 0; i < n; i++ {
		for j := range features {
			data[i*len(features)+j] = cols[j][i]
		}
	}
	return mat.NewDense(n, len(features), data), nil
}

// SuggestColumn returns the closest column name to miss, or "" when
// nothing is close enough. Titles are matched too, so a user typing a
// display name is pointed at the underlying column.
func (d *Dataset) SuggestColumn(miss string) string {
	best, bestDist := "", suggestMaxDistance+1
	for _, c := range d.columns {
		for _, candidate := range []string{c.Name, c.Title} {
			dist := levenshtein.ComputeDistance(strings.ToLower(miss), strings.ToLower(candidate))
			if dist < bestDist {
				best, bestDist = c.Name, dist
			}
		}
	}
	return best
}
