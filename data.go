package rrd

// data.go implements navigation over fetched datasets.

import "time"

// Data is the dataset produced by Fetch: the values plus the metadata
// (start, end, step, and data source names) librrd settled on.
//
// Data sources are conceptually the columns; rows are timestamps.
type Data struct {
	start  time.Time
	end    time.Time
	step   time.Duration
	names  []string
	values []float64
	rows   int
}

func newData(start, end time.Time, step time.Duration, names []string, values []float64) *Data {
	rows := 0
	if len(names) > 0 {
		rows = len(values) / len(names)
	}
	return &Data{
		start:  start,
		end:    end,
		step:   step,
		names:  names,
		values: values,
		rows:   rows,
	}
}

// Start is the timestamp of the first row.
func (d *Data) Start() time.Time { return d.start }

// End is the timestamp of the last row.
func (d *Data) End() time.Time { return d.end }

// Step is the time between rows.
func (d *Data) Step() time.Duration { return d.step }

// RowCount is the number of rows in the dataset.
func (d *Data) RowCount() int { return d.rows }

// DSNames returns the data source names, in column order.
func (d *Data) DSNames() []string { return d.names }

// Row returns the i-th row. The returned values slice aliases the
// dataset; do not modify it.
func (d *Data) Row(i int) Row {
	return Row{
		Time:   d.start.Add(time.Duration(i) * d.step),
		names:  d.names,
		values: d.values[i*len(d.names) : (i+1)*len(d.names)],
	}
}

// Rows materializes all rows in timestamp order.
func (d *Data) Rows() []Row {
	rows := make([]Row, d.rows)
	for i := range rows {
		rows[i] = d.Row(i)
	}
	return rows
}

// Row is the set of values for one timestamp, ordered like DSNames.
type Row struct {
	Time   time.Time
	names  []string
	values []float64
}

// Values returns the row values in DS order.
func (r Row) Values() []float64 { return r.values }

// Cells pairs each value with its DS name.
func (r Row) Cells() []Cell {
	cells := make([]Cell, len(r.values))
	for i, v := range r.values {
		cells[i] = Cell{Name: r.names[i], Value: v}
	}
	return cells
}

// Cell is one value in a Row together with its DS name.
type Cell struct {
	Name  string
	Value float64
}
