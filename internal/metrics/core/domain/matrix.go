package domain

import (
	"sort"
	"time"
)

// MetricsMatrix is the zero-filled date × table grid that feeds the chart.
// Values[i][j] is the count of Tables[j] on Dates[i].
type MetricsMatrix struct {
	Dates  []time.Time
	Tables []string
	Values [][]int64
}

// Reshape pivots records into a matrix whose rows are the distinct record dates
// (ascending) and whose columns are tables in the given order. Missing cells are 0.
func Reshape(records []CountRecord, tables []string) *MetricsMatrix {
	return ReshapeWindow(records, tables, nil)
}

// ReshapeWindow is Reshape with extra row dates, typically Window.Dates, so
// days without any record still get an all-zero row.
func ReshapeWindow(records []CountRecord, tables []string, dates []time.Time) *MetricsMatrix {
	columns := make([]string, 0, len(tables))
	colIndex := make(map[string]int, len(tables))
	for _, t := range tables {
		if _, ok := colIndex[t]; ok {
			continue
		}
		colIndex[t] = len(columns)
		columns = append(columns, t)
	}

	seen := make(map[time.Time]struct{})
	rows := make([]time.Time, 0, len(dates))
	addRow := func(d time.Time) {
		d = DateOf(d)
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		rows = append(rows, d)
	}
	for _, d := range dates {
		addRow(d)
	}
	for _, r := range records {
		addRow(r.Date)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Before(rows[j]) })

	rowIndex := make(map[time.Time]int, len(rows))
	values := make([][]int64, len(rows))
	for i, d := range rows {
		rowIndex[d] = i
		values[i] = make([]int64, len(columns))
	}

	for _, r := range records {
		j, ok := colIndex[r.Table]
		if !ok {
			continue
		}
		values[rowIndex[DateOf(r.Date)]][j] += r.Count
	}

	return &MetricsMatrix{
		Dates:  rows,
		Tables: columns,
		Values: values,
	}
}

// Column returns the counts of one table in row order, or nil if the table is
// not a column.
func (m *MetricsMatrix) Column(table string) []int64 {
	for j, t := range m.Tables {
		if t != table {
			continue
		}
		col := make([]int64, len(m.Dates))
		for i := range m.Dates {
			col[i] = m.Values[i][j]
		}
		return col
	}
	return nil
}

// Max returns the largest cell, 0 for an empty matrix.
func (m *MetricsMatrix) Max() int64 {
	var top int64
	for _, row := range m.Values {
		for _, v := range row {
			if v > top {
				top = v
			}
		}
	}
	return top
}
