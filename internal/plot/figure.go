package plot

// The figure model follows the trace/layout/config shape of browser charting
// libraries so the view server can hand it to a front end unchanged.

const SeriesCount = 4

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width"`
}

type Marker struct {
	Size float64 `json:"size"`
}

// Trace is one series. A nil Y entry is a gap.
type Trace struct {
	X      []int64    `json:"x"`
	Y      []*float64 `json:"y"`
	Mode   string     `json:"mode"`
	Name   string     `json:"name"`
	Line   Line       `json:"line"`
	Marker Marker     `json:"marker"`
}

// Shape is a background band spanning the full plot height.
type Shape struct {
	Type      string  `json:"type"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	X0        int64   `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        int64   `json:"x1"`
	Y1        float64 `json:"y1"`
	FillColor string  `json:"fillcolor"`
	Layer     string  `json:"layer"`
	Line      Line    `json:"line"`
}

type Font struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

type Title struct {
	Text string `json:"text"`
	Font Font   `json:"font"`
}

type Axis struct {
	Title     string `json:"title"`
	GridColor string `json:"gridcolor"`
	ShowGrid  bool   `json:"showgrid"`
}

type Legend struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	Orientation string  `json:"orientation"`
	BgColor     string  `json:"bgcolor"`
	BorderColor string  `json:"bordercolor"`
	BorderWidth int     `json:"borderwidth"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Layout struct {
	Title        Title   `json:"title"`
	XAxis        Axis    `json:"xaxis"`
	YAxis        Axis    `json:"yaxis"`
	PlotBgColor  string  `json:"plot_bgcolor"`
	PaperBgColor string  `json:"paper_bgcolor"`
	Legend       Legend  `json:"legend"`
	Margin       Margin  `json:"margin"`
	Shapes       []Shape `json:"shapes"`
}

type Config struct {
	Responsive             bool     `json:"responsive"`
	DisplayModeBar         bool     `json:"displayModeBar"`
	ModeBarButtonsToRemove []string `json:"modeBarButtonsToRemove"`
}

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config Config  `json:"config"`
}

var seriesColors = [SeriesCount]string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4"}

// NewFigure returns the empty sensor chart: four named series, fixed title and
// axes, and a toolset without pan, lasso or box select.
func NewFigure() *Figure {
	f := &Figure{
		Data: make([]Trace, SeriesCount),
		Layout: Layout{
			Title: Title{
				Text: "Monitoring with Dynamic Speed Control",
				Font: Font{Size: 18, Color: "#333"},
			},
			XAxis:        Axis{Title: "Timestamp", GridColor: "#E8E8E8", ShowGrid: true},
			YAxis:        Axis{Title: "Sensor Value", GridColor: "#E8E8E8", ShowGrid: true},
			PlotBgColor:  "rgba(0,0,0,0)",
			PaperBgColor: "rgba(0,0,0,0)",
			Legend: Legend{
				X: 0.5, Y: 1.1,
				XAnchor:     "center",
				Orientation: "h",
				BgColor:     "rgba(255,255,255,0.8)",
				BorderColor: "#DDD",
				BorderWidth: 1,
			},
			Margin: Margin{L: 60, R: 40, T: 80, B: 60},
			Shapes: []Shape{},
		},
		Config: Config{
			Responsive:             true,
			DisplayModeBar:         true,
			ModeBarButtonsToRemove: []string{"pan2d", "lasso2d", "select2d"},
		},
	}

	for i := range f.Data {
		f.Data[i] = Trace{
			X:      []int64{},
			Y:      []*float64{},
			Mode:   "lines+markers",
			Name:   seriesName(i),
			Line:   Line{Color: seriesColors[i], Width: 3},
			Marker: Marker{Size: 6},
		}
	}
	return f
}

func seriesName(i int) string {
	return "Sensor " + string(rune('1'+i))
}

// Update swaps every series' points and all bands in one step.
func (f *Figure) Update(x []int64, y [SeriesCount][]*float64, bands []Shape) {
	for i := range f.Data {
		f.Data[i].X = x
		f.Data[i].Y = y[i]
	}
	f.Layout.Shapes = bands
}

// Points returns the number of points of the first series.
func (f *Figure) Points() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0].X)
}

// Clone returns a copy that shares no slices with f.
func (f *Figure) Clone() *Figure {
	if f == nil {
		return nil
	}
	c := *f
	c.Data = make([]Trace, len(f.Data))
	for i, t := range f.Data {
		t.X = append([]int64(nil), t.X...)
		t.Y = append([]*float64(nil), t.Y...)
		c.Data[i] = t
	}
	c.Layout.Shapes = append([]Shape(nil), f.Layout.Shapes...)
	c.Config.ModeBarButtonsToRemove = append([]string(nil), f.Config.ModeBarButtonsToRemove...)
	return &c
}
