package plot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette maps LED states to band colors.
type Palette struct {
	Colors   map[int]string
	Fallback string
}

func (p Palette) Color(led int) string {
	if c, ok := p.Colors[led]; ok {
		return c
	}
	return p.Fallback
}

// ParseColor accepts "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b, a)".
func ParseColor(s string) (drawing.Color, error) {
	v := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	switch {
	case strings.HasPrefix(v, "#"):
		hex := strings.TrimPrefix(v, "#")
		if len(hex) != 6 && len(hex) != 3 {
			return drawing.Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return drawing.Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		return drawing.ColorFromHex(hex), nil

	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		parts := strings.Split(v[len("rgba("):len(v)-1], ",")
		if len(parts) != 4 {
			return drawing.Color{}, fmt.Errorf("invalid rgba color %q", s)
		}
		c, err := rgb(parts[:3])
		if err != nil {
			return drawing.Color{}, fmt.Errorf("invalid rgba color %q: %w", s, err)
		}
		a, err := strconv.ParseFloat(parts[3], 64)
		if err != nil || a < 0 || a > 1 {
			return drawing.Color{}, fmt.Errorf("invalid rgba alpha in %q", s)
		}
		c.A = uint8(a*255 + 0.5)
		return c, nil

	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		parts := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(parts) != 3 {
			return drawing.Color{}, fmt.Errorf("invalid rgb color %q", s)
		}
		c, err := rgb(parts)
		if err != nil {
			return drawing.Color{}, fmt.Errorf("invalid rgb color %q: %w", s, err)
		}
		return c, nil
	}

	return drawing.Color{}, fmt.Errorf("unsupported color %q", s)
}

func rgb(parts []string) (drawing.Color, error) {
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return drawing.Color{}, err
		}
		ch[i] = uint8(n)
	}
	return drawing.Color{R: ch[0], G: ch[1], B: ch[2], A: 255}, nil
}
