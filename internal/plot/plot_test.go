package plot

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestNewFigure_EmptyFourSeries(t *testing.T) {
	f := NewFigure()

	if len(f.Data) != SeriesCount {
		t.Fatalf("expected %d series, got %d", SeriesCount, len(f.Data))
	}
	for i, tr := range f.Data {
		if len(tr.X) != 0 || len(tr.Y) != 0 {
			t.Fatalf("series %d not empty", i)
		}
		if want := "Sensor " + string(rune('1'+i)); tr.Name != want {
			t.Fatalf("series %d name = %q, want %q", i, tr.Name, want)
		}
	}
	if len(f.Layout.Shapes) != 0 {
		t.Fatalf("expected no bands, got %d", len(f.Layout.Shapes))
	}
	removed := strings.Join(f.Config.ModeBarButtonsToRemove, ",")
	if removed != "pan2d,lasso2d,select2d" {
		t.Fatalf("unexpected toolset: %s", removed)
	}
}

func TestFigure_JSONShape(t *testing.T) {
	f := NewFigure()
	f.Update([]int64{0, 100}, [SeriesCount][]*float64{
		{fp(1), nil}, {fp(2), fp(6)}, {fp(3), fp(7)}, {fp(4), fp(8)},
	}, []Shape{{Type: "rect", X0: 0, X1: 100, FillColor: "#000000"}})

	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"y":[1,null]`, `"shapes":[{"type":"rect"`, `"modeBarButtonsToRemove":["pan2d","lasso2d","select2d"]`} {
		if !strings.Contains(s, want) {
			t.Fatalf("json missing %s: %s", want, s)
		}
	}
}

func TestFigure_CloneIsIndependent(t *testing.T) {
	f := NewFigure()
	f.Update([]int64{1}, [SeriesCount][]*float64{{fp(1)}, {fp(1)}, {fp(1)}, {fp(1)}}, []Shape{{X0: 1}})

	c := f.Clone()
	c.Data[0].X[0] = 99
	c.Layout.Shapes[0].X0 = 99

	if f.Data[0].X[0] != 1 || f.Layout.Shapes[0].X0 != 1 {
		t.Fatalf("clone shares memory with original")
	}
}

func TestPalette_Fallback(t *testing.T) {
	p := Palette{Colors: map[int]string{0: "red"}, Fallback: "grey"}
	if p.Color(0) != "red" || p.Color(7) != "grey" || p.Color(-1) != "grey" {
		t.Fatalf("unexpected palette mapping")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("rgba(255, 107, 107, 0.4)")
	if err != nil {
		t.Fatalf("rgba: %v", err)
	}
	if c.R != 255 || c.G != 107 || c.B != 107 || c.A != 102 {
		t.Fatalf("rgba parsed to %+v", c)
	}

	c, err = ParseColor("#4ECDC4")
	if err != nil {
		t.Fatalf("hex: %v", err)
	}
	if c.R != 0x4E || c.G != 0xCD || c.B != 0xC4 || c.A != 255 {
		t.Fatalf("hex parsed to %+v", c)
	}

	for _, bad := range []string{"", "teal", "rgba(1,2,3)", "rgba(1,2,3,2)", "#12345", "rgb(300,0,0)"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRenderPNG_WithBands(t *testing.T) {
	f := NewFigure()
	f.Update([]int64{0, 100, 200}, [SeriesCount][]*float64{
		{fp(1), fp(5), fp(2)}, {fp(2), fp(6), fp(3)}, {fp(3), fp(7), fp(4)}, {fp(4), fp(8), fp(5)},
	}, []Shape{
		{Type: "rect", X0: 0, X1: 100, FillColor: "rgba(255, 107, 107, 0.4)"},
		{Type: "rect", X0: 100, X1: 200, FillColor: "rgba(78, 205, 196, 0.4)"},
	})

	var buf bytes.Buffer
	if err := RenderPNG(&buf, f, 640, 320); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("empty image %v", b)
	}
}

func TestRenderPNG_EmptyFigure(t *testing.T) {
	err := RenderPNG(&bytes.Buffer{}, NewFigure(), 640, 320)
	if !errors.Is(err, ErrNotEnoughPoints) {
		t.Fatalf("expected ErrNotEnoughPoints, got %v", err)
	}
}

func TestRenderPNG_SinglePoint(t *testing.T) {
	f := NewFigure()
	f.Update([]int64{0}, [SeriesCount][]*float64{{fp(1)}, {fp(2)}, {fp(3)}, {fp(4)}}, nil)

	err := RenderPNG(&bytes.Buffer{}, f, 640, 320)
	if !errors.Is(err, ErrNotEnoughPoints) {
		t.Fatalf("expected ErrNotEnoughPoints, got %v", err)
	}
}
