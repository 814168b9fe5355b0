package domain_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"table-counts-service/internal/metrics/core/domain"
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReshape_RowsAndColumns(t *testing.T) {
	records := []domain.CountRecord{
		{Table: "orders", Date: day("2026-10-15"), Count: 3},
		{Table: "orders", Date: day("2026-10-17"), Count: 7},
		{Table: "customers", Date: day("2026-10-13"), Count: 1},
	}
	tables := []string{"orders", "customers", "refunds"}

	m := domain.Reshape(records, tables)

	gt.Equal(t, m.Dates, []time.Time{day("2026-10-13"), day("2026-10-15"), day("2026-10-17")})
	gt.Equal(t, m.Tables, tables)
	gt.Equal(t, m.Values, [][]int64{
		{0, 1, 0},
		{3, 0, 0},
		{7, 0, 0},
	})
}

func TestReshape_EveryCellPresent(t *testing.T) {
	records := []domain.CountRecord{
		{Table: "a", Date: day("2026-10-18"), Count: 2},
		{Table: "b", Date: day("2026-10-14"), Count: 5},
		{Table: "c", Date: day("2026-10-16"), Count: 9},
	}
	tables := []string{"c", "a", "b"}

	m := domain.Reshape(records, tables)

	gt.Equal(t, len(m.Values), len(m.Dates))
	for _, row := range m.Values {
		gt.Equal(t, len(row), len(tables))
	}

	// each input count lands in exactly one cell, everything else is zero
	var sum, nonZero int64
	for _, row := range m.Values {
		for _, v := range row {
			sum += v
			if v != 0 {
				nonZero++
			}
		}
	}
	gt.Equal(t, sum, int64(16))
	gt.Equal(t, nonZero, int64(3))
	gt.Equal(t, m.Column("c"), []int64{0, 9, 0})
}

func TestReshape_Idempotent(t *testing.T) {
	records := []domain.CountRecord{
		{Table: "orders", Date: day("2026-10-16"), Count: 3},
		{Table: "items", Date: day("2026-10-14"), Count: 4},
	}
	tables := []string{"orders", "items"}

	first := domain.Reshape(records, tables)
	second := domain.Reshape(records, tables)

	gt.Equal(t, *first, *second)
}

func TestReshape_TableOutsideSelection(t *testing.T) {
	records := []domain.CountRecord{
		{Table: "orders", Date: day("2026-10-16"), Count: 3},
		{Table: "ghost", Date: day("2026-10-12"), Count: 8},
	}

	m := domain.Reshape(records, []string{"orders"})

	// the date still becomes a row, the table does not become a column
	gt.Equal(t, m.Dates, []time.Time{day("2026-10-12"), day("2026-10-16")})
	gt.Equal(t, m.Tables, []string{"orders"})
	gt.Equal(t, m.Values, [][]int64{{0}, {3}})
}

func TestReshape_DuplicateTablesAndRecords(t *testing.T) {
	records := []domain.CountRecord{
		{Table: "orders", Date: day("2026-10-16"), Count: 3},
		{Table: "orders", Date: day("2026-10-16"), Count: 2},
	}

	m := domain.Reshape(records, []string{"orders", "orders"})

	gt.Equal(t, m.Tables, []string{"orders"})
	gt.Equal(t, m.Values, [][]int64{{5}})
}

func TestReshape_NormalizesTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	records := []domain.CountRecord{
		{Table: "orders", Date: time.Date(2026, 10, 16, 0, 0, 0, 0, loc), Count: 1},
		{Table: "orders", Date: time.Date(2026, 10, 16, 23, 59, 0, 0, loc), Count: 1},
	}

	m := domain.Reshape(records, []string{"orders"})

	gt.Equal(t, m.Dates, []time.Time{day("2026-10-16")})
	gt.Equal(t, m.Values, [][]int64{{2}})
}

// namespace "sales", table "orders": 3 rows on day-2, nothing else in the window.
func TestReshapeWindow_SalesScenario(t *testing.T) {
	today := day("2026-10-18")
	records := []domain.CountRecord{
		{Table: "orders", Date: today.AddDate(0, 0, -2), Count: 3},
	}
	window := []time.Time{
		today.AddDate(0, 0, -4),
		today.AddDate(0, 0, -3),
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -1),
		today,
	}

	m := domain.ReshapeWindow(records, []string{"orders"}, window)

	gt.Equal(t, m.Dates, window)
	gt.Equal(t, m.Values, [][]int64{{0}, {0}, {3}, {0}, {0}})
	gt.Equal(t, m.Max(), int64(3))
}

func TestReshape_Empty(t *testing.T) {
	m := domain.Reshape(nil, []string{"orders"})

	gt.Equal(t, len(m.Dates), 0)
	gt.Equal(t, m.Tables, []string{"orders"})
	gt.Equal(t, m.Max(), int64(0))
	gt.True(t, m.Column("missing") == nil)
}
