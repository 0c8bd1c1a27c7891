package view

import (
	"sync"
	"testing"
	"time"

	"github.com/Rin0913/telemetry-dashboard/internal/plot"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(region string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, region)
}

func (r *recorder) count(region string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == region {
			n++
		}
	}
	return n
}

func TestStatusRegion_SetTextKeepsClass(t *testing.T) {
	b := NewBoard(nil)
	b.Status.Set("Conectado!", ClassConnected)
	b.Status.SetText("Scanning...")

	got := b.Status.Snapshot()
	if got.Text != "Scanning..." || got.Class != ClassConnected {
		t.Fatalf("unexpected status view: %+v", got)
	}
}

func TestBanner_LastShowControlsDismiss(t *testing.T) {
	b := NewBoard(nil).Banner

	b.Show(200 * time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	b.Show(200 * time.Millisecond)

	// first timer fires at ~200ms; the banner must survive it
	time.Sleep(150 * time.Millisecond)
	if !b.Snapshot().Visible {
		t.Fatalf("banner hidden by a stale timer")
	}

	time.Sleep(150 * time.Millisecond)
	if b.Snapshot().Visible {
		t.Fatalf("banner still visible after the last window elapsed")
	}
}

func TestIntervalRegion_PlaceholderOnEmpty(t *testing.T) {
	r := NewBoard(nil).Intervals
	r.Render("x", []string{"a", "b"}, "none")
	r.Render("y", nil, "none")

	v := r.Snapshot()
	if v.Label != "y" || len(v.Zones) != 0 || v.Placeholder != "none" {
		t.Fatalf("unexpected interval view: %+v", v)
	}
}

func TestDeviceRegion_RevealOnlyWhenNonEmpty(t *testing.T) {
	r := NewBoard(nil).Devices

	r.Replace(nil)
	if r.Snapshot().Visible {
		t.Fatalf("empty list must not reveal the region")
	}

	r.Replace([]DeviceEntry{{Address: "AA:BB", Name: "ESP32"}})
	if v := r.Snapshot(); !v.Visible || len(v.Devices) != 1 {
		t.Fatalf("unexpected device view: %+v", v)
	}

	r.Replace(nil)
	if v := r.Snapshot(); !v.Visible || len(v.Devices) != 0 {
		t.Fatalf("visible region should stay visible with cleared entries: %+v", v)
	}
}

func TestChartRegion_ResetKeepsInstance(t *testing.T) {
	rec := &recorder{}
	b := NewBoard(rec)
	before := b.Chart.fig

	v := 1.0
	b.Chart.Redraw(func(f *plot.Figure) {
		f.Update([]int64{1}, [plot.SeriesCount][]*float64{{&v}, {&v}, {&v}, {&v}}, nil)
	})
	b.Chart.Reset(plot.NewFigure())

	if b.Chart.fig != before {
		t.Fatalf("reset replaced the chart instance")
	}
	if b.Chart.Snapshot().Points() != 0 {
		t.Fatalf("reset did not empty the chart")
	}
	if rec.count(RegionChart) != 2 {
		t.Fatalf("expected 2 chart publications, got %d", rec.count(RegionChart))
	}
}
