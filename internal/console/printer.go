package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Rin0913/telemetry-dashboard/internal/plot"
	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

// Printer renders region changes as text. A region is printed only when its
// text differs from what was printed last for it.
type Printer struct {
	mu   sync.Mutex
	out  io.Writer
	last map[string]string
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		last: make(map[string]string),
	}
}

func (p *Printer) Publish(region string, data any) {
	text, ok := render(region, data)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Acknowledgments repeat on purpose.
	if region != view.RegionAck && p.last[region] == text {
		return
	}
	p.last[region] = text
	fmt.Fprintln(p.out, text)
}

// Println writes a line that is not tied to a region.
func (p *Printer) Println(a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, a...)
}

func render(region string, data any) (string, bool) {
	switch v := data.(type) {
	case view.StatusView:
		if v.Class == view.ClassNone {
			return "[status] " + v.Text, true
		}
		return fmt.Sprintf("[status] %s (%s)", v.Text, v.Class), true

	case view.BannerView:
		if v.Visible {
			return "[banner] new data received", true
		}
		return "[banner] -", true

	case view.IntervalView:
		var b strings.Builder
		b.WriteString("[intervals] " + v.Label)
		if len(v.Zones) == 0 {
			b.WriteString("\n  " + v.Placeholder)
		}
		for _, z := range v.Zones {
			b.WriteString("\n  " + z)
		}
		return b.String(), true

	case *plot.Figure:
		return fmt.Sprintf("[chart] %d points, %d bands", v.Points(), len(v.Layout.Shapes)), true

	case view.DeviceView:
		if !v.Visible {
			return "", false
		}
		return "[devices]\n" + DeviceList(v.Devices), true

	case string:
		if region == view.RegionAck {
			return frame(v), true
		}
	}
	return "", false
}

// DeviceList numbers entries from 1, the index used by "connect <n>".
func DeviceList(devices []view.DeviceEntry) string {
	if len(devices) == 0 {
		return "  (none)"
	}
	lines := make([]string, 0, len(devices))
	for i, d := range devices {
		lines = append(lines, fmt.Sprintf("  %d) %s (%s)", i+1, d.Name, d.Address))
	}
	return strings.Join(lines, "\n")
}

func frame(msg string) string {
	lines := strings.Split(msg, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	border := "+" + strings.Repeat("-", width+2) + "+"
	var b strings.Builder
	b.WriteString(border)
	for _, l := range lines {
		pad := width - len([]rune(l))
		b.WriteString("\n| " + l + strings.Repeat(" ", pad) + " |")
	}
	b.WriteString("\n" + border)
	return b.String()
}
