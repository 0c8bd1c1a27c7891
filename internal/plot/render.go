package plot

import (
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNotEnoughPoints = errors.New("plot: figure has no drawable series")

// RenderPNG draws the figure's series over its background bands.
func RenderPNG(w io.Writer, f *Figure, width, height int) error {
	if f == nil {
		return ErrNotEnoughPoints
	}

	series := []chart.Series{}
	if len(f.Layout.Shapes) > 0 {
		series = append(series, bandSeries{shapes: f.Layout.Shapes})
	}

	drawable := 0
	for _, t := range f.Data {
		xs, ys := points(t)
		// A single point has no x range to draw on.
		if len(xs) < 2 {
			continue
		}
		drawable++

		col, err := ParseColor(t.Line.Color)
		if err != nil {
			col = chart.ColorBlue
		}
		series = append(series, chart.ContinuousSeries{
			Name: t.Name,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: t.Line.Width,
				DotColor:    col,
				DotWidth:    t.Marker.Size / 2,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if drawable == 0 {
		return ErrNotEnoughPoints
	}

	ch := chart.Chart{
		Title:      f.Layout.Title.Text,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: f.Layout.XAxis.Title},
		YAxis:      chart.YAxis{Name: f.Layout.YAxis.Title},
		Series:     series,
	}
	return ch.Render(chart.PNG, w)
}

func points(t Trace) ([]float64, []float64) {
	n := min(len(t.X), len(t.Y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if t.Y[i] == nil {
			continue
		}
		xs = append(xs, float64(t.X[i]))
		ys = append(ys, *t.Y[i])
	}
	return xs, ys
}

// bandSeries draws full-height rectangles. It is placed first so the data
// series paint over it, and it exposes no values so it never moves the axes.
type bandSeries struct {
	shapes []Shape
}

func (b bandSeries) GetName() string           { return "" }
func (b bandSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (b bandSeries) GetStyle() chart.Style     { return chart.Style{} }
func (b bandSeries) Validate() error           { return nil }

func (b bandSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	for _, s := range b.shapes {
		col, err := ParseColor(s.FillColor)
		if err != nil {
			continue
		}

		x0 := clamp(canvasBox.Left+xrange.Translate(float64(s.X0)), canvasBox.Left, canvasBox.Right)
		x1 := clamp(canvasBox.Left+xrange.Translate(float64(s.X1)), canvasBox.Left, canvasBox.Right)
		if x1 <= x0 {
			continue
		}

		r.SetFillColor(col)
		r.SetStrokeColor(drawing.ColorTransparent)
		r.SetStrokeWidth(0)
		r.MoveTo(x0, canvasBox.Top)
		r.LineTo(x1, canvasBox.Top)
		r.LineTo(x1, canvasBox.Bottom)
		r.LineTo(x0, canvasBox.Bottom)
		r.Close()
		r.Fill()
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
