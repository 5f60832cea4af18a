package export

import "time"

// Column describes one exported column: its header label and its share of
// the printable PDF width in millimetres. A zero width takes an even split
// of whatever the sized columns leave over.
type Column struct {
	Header string
	Width  float64
}

// Dataset is tabular export content with a fixed column order. Rows are
// positional and must match the column layout.
type Dataset struct {
	Title     string
	Columns   []Column
	Rows      [][]string
	Generated time.Time
}

// HeaderRow returns the column headers in order.
func (d Dataset) HeaderRow() []string {
	headers := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		headers[i] = col.Header
	}
	return headers
}

// TaskListColumns is the column layout for task list exports. Widths sum to
// the printable width of an A4 page inside 10mm margins.
func TaskListColumns() []Column {
	return []Column{
		{Header: "Subject", Width: 30},
		{Header: "Title", Width: 60},
		{Header: "Deadline", Width: 40},
		{Header: "Status", Width: 35},
		{Header: "Completed", Width: 25},
	}
}
