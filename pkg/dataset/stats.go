package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds basic statistics for one numeric column.
type Summary struct {
	Column string  `json:"column"`
	Title  string  `json:"title"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summaries computes statistics for every numeric column, in file
// order.
func (d *Dataset) Summaries() []Summary {
	var out []Summary
	for _, c := range d.NumericColumns() {
		values := d.numeric[c.Name]
		if len(values) == 0 {
			continue
		}
		stddev := 0.0
		if len(values) > 1 {
			stddev = stat.StdDev(values, nil)
		}
		out = append(out, Summary{
			Column: c.Name,
			Title:  c.Title,
			Count:  len(values),
			Mean:   stat.Mean(values, nil),
			StdDev: stddev,
			Min:    floats.Min(values),
			Max:    floats.Max(values),
		})
	}
	return out
}
