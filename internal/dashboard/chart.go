package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/api"
	"github.com/Rin0913/telemetry-dashboard/internal/plot"
	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

// ChartEngine keeps the four sensor series and the LED bands in sync with the
// backend's reading buffer.
type ChartEngine struct {
	src     ChartSource
	region  *view.ChartRegion
	palette plot.Palette
	log     zerolog.Logger
}

func NewChartEngine(src ChartSource, region *view.ChartRegion, palette plot.Palette, log zerolog.Logger) *ChartEngine {
	return &ChartEngine{
		src:     src,
		region:  region,
		palette: palette,
		log:     log.With().Str("component", "chart").Logger(),
	}
}

// Init resets the chart to its empty state without replacing the region.
func (e *ChartEngine) Init() {
	e.region.Reset(plot.NewFigure())
}

func (e *ChartEngine) Tick(ctx context.Context) {
	readings, err := e.src.ChartData(ctx)
	if err != nil {
		logFailure(ctx, e.log, err, "chart poll failed")
		return
	}
	if len(readings) == 0 {
		return
	}

	x, y := Series(readings)
	bands := Bands(readings, e.palette)

	e.region.Redraw(func(f *plot.Figure) {
		f.Update(x, y, bands)
	})
	e.log.Debug().Int("points", len(readings)).Int("bands", len(bands)).Msg("chart redrawn")
}

// Series splits readings into one shared x axis and four y arrays. A missing
// sensor position becomes a gap.
func Series(readings []api.Reading) ([]int64, [plot.SeriesCount][]*float64) {
	x := make([]int64, len(readings))
	var y [plot.SeriesCount][]*float64
	for i := range y {
		y[i] = make([]*float64, len(readings))
	}

	for n, r := range readings {
		x[n] = r.Timestamp
		for i := 0; i < plot.SeriesCount; i++ {
			if i < len(r.Sensors) {
				v := r.Sensors[i]
				y[i][n] = &v
			}
		}
	}
	return x, y
}

// Bands emits one band per adjacent pair of readings, colored by the LED state
// of the earlier one. The last reading has no known end, so it gets no band.
func Bands(readings []api.Reading, palette plot.Palette) []plot.Shape {
	if len(readings) < 2 {
		return []plot.Shape{}
	}

	bands := make([]plot.Shape, 0, len(readings)-1)
	for i := 0; i < len(readings)-1; i++ {
		bands = append(bands, plot.Shape{
			Type:      "rect",
			XRef:      "x",
			YRef:      "paper",
			X0:        readings[i].Timestamp,
			Y0:        0,
			X1:        readings[i+1].Timestamp,
			Y1:        1,
			FillColor: palette.Color(readings[i].LED),
			Layer:     "below",
			Line:      plot.Line{Width: 0},
		})
	}
	return bands
}
