package dataset

//go:generate go run github.com/dmarkham/enumer -type ColumnKind -trimprefix ColumnKind -transform lower -json -yaml -output kind.gen.go

// ColumnKind classifies a dataset column. Numeric columns can be
// plotted and clustered; categorical columns only appear in the table
// and as ground-truth labels.
type ColumnKind int

const (
	ColumnKindNumeric ColumnKind = iota
	ColumnKindCategorical
)
