// Package chart renders a MetricsMatrix as a PNG line chart.
package chart

import (
	"io"
	"time"

	"table-counts-service/internal/metrics/core/domain"

	"github.com/m-mizutani/goerr/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 420
)

type Renderer struct {
	Width  int
	Height int
	Title  string
}

func NewRenderer() *Renderer {
	return &Renderer{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Title:  "Record Counts",
	}
}

// RenderPNG draws one series per table column. go-chart rejects zero-width
// ranges, so a single-date matrix is widened by one day and the y axis always
// starts at zero.
func (r *Renderer) RenderPNG(w io.Writer, m *domain.MetricsMatrix) error {
	if m == nil || len(m.Dates) == 0 || len(m.Tables) == 0 {
		return goerr.New("nothing to chart")
	}

	xs := m.Dates
	if len(xs) == 1 {
		xs = []time.Time{m.Dates[0], m.Dates[0].AddDate(0, 0, 1)}
	}

	series := make([]gochart.Series, 0, len(m.Tables))
	for j, table := range m.Tables {
		col := m.Column(table)
		ys := make([]float64, len(xs))
		for i := range xs {
			if i < len(col) {
				ys[i] = float64(col[i])
			} else {
				ys[i] = float64(col[len(col)-1])
			}
		}
		series = append(series, gochart.TimeSeries{
			Name:    table,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: gochart.GetDefaultColor(j),
				StrokeWidth: 2,
				DotColor:    gochart.GetDefaultColor(j),
				DotWidth:    3,
			},
		})
	}

	yMax := float64(m.Max())
	if yMax <= 0 {
		yMax = 1
	}

	graph := gochart.Chart{
		Title:  r.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name:  "Record Count",
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax * 1.1},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return goerr.Wrap(err, "failed to render chart",
			goerr.V("dates", len(m.Dates)),
			goerr.V("tables", len(m.Tables)),
		)
	}
	return nil
}
