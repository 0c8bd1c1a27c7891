package view

import (
	"sync"
	"time"

	"github.com/Rin0913/telemetry-dashboard/internal/plot"
)

type ConnClass string

const (
	ClassNone       ConnClass = ""
	ClassConnected  ConnClass = "connected"
	ClassConnecting ConnClass = "connecting"
)

type StatusView struct {
	Text  string    `json:"text"`
	Class ConnClass `json:"class"`
}

type StatusRegion struct {
	mu  sync.RWMutex
	v   StatusView
	pub Publisher
}

func (r *StatusRegion) Set(text string, class ConnClass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v = StatusView{Text: text, Class: class}
	r.pub.Publish(RegionStatus, r.v)
}

// SetText replaces the label and keeps the current class.
func (r *StatusRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Text = text
	r.pub.Publish(RegionStatus, r.v)
}

func (r *StatusRegion) Snapshot() StatusView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.v
}

type BannerView struct {
	Visible bool `json:"visible"`
}

// Banner is the transient new-data notification.
type Banner struct {
	mu      sync.Mutex
	visible bool
	gen     uint64
	pub     Publisher
}

// Show makes the banner visible and arms a dismiss timer. Only the timer of
// the most recent Show hides it.
func (b *Banner) Show(window time.Duration) {
	b.mu.Lock()
	b.gen++
	mine := b.gen
	b.visible = true
	b.pub.Publish(RegionBanner, BannerView{Visible: true})
	b.mu.Unlock()

	time.AfterFunc(window, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen != mine {
			return
		}
		b.visible = false
		b.pub.Publish(RegionBanner, BannerView{Visible: false})
	})
}

func (b *Banner) Snapshot() BannerView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BannerView{Visible: b.visible}
}

type IntervalView struct {
	Label       string   `json:"label"`
	Zones       []string `json:"zones"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type IntervalRegion struct {
	mu  sync.RWMutex
	v   IntervalView
	pub Publisher
}

// Render replaces the whole region. Placeholder is shown when zones is empty.
func (r *IntervalRegion) Render(label string, zones []string, placeholder string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.v = IntervalView{Label: label, Zones: zones}
	if len(zones) == 0 {
		r.v.Zones = nil
		r.v.Placeholder = placeholder
	}
	r.pub.Publish(RegionIntervals, r.snapshot())
}

func (r *IntervalRegion) Snapshot() IntervalView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

func (r *IntervalRegion) snapshot() IntervalView {
	v := r.v
	v.Zones = append([]string(nil), r.v.Zones...)
	return v
}

// ChartRegion owns the single chart instance for the lifetime of the board.
type ChartRegion struct {
	mu  sync.RWMutex
	fig *plot.Figure
	pub Publisher
}

// Reset overwrites the chart contents in place.
func (r *ChartRegion) Reset(f *plot.Figure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.fig = *f
	r.pub.Publish(RegionChart, r.fig.Clone())
}

// Redraw applies fn to the figure as one atomic update.
func (r *ChartRegion) Redraw(fn func(f *plot.Figure)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.fig)
	r.pub.Publish(RegionChart, r.fig.Clone())
}

func (r *ChartRegion) Snapshot() *plot.Figure {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fig.Clone()
}

type DeviceEntry struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type DeviceView struct {
	Visible bool          `json:"visible"`
	Devices []DeviceEntry `json:"devices"`
}

type DeviceRegion struct {
	mu  sync.RWMutex
	v   DeviceView
	pub Publisher
}

// Replace swaps the entries and reveals the region if any are given. An empty
// list never hides a region that is already visible.
func (r *DeviceRegion) Replace(entries []DeviceEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.v.Devices = append([]DeviceEntry(nil), entries...)
	if len(entries) > 0 {
		r.v.Visible = true
	}
	r.pub.Publish(RegionDevices, r.snapshot())
}

func (r *DeviceRegion) Snapshot() DeviceView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

func (r *DeviceRegion) snapshot() DeviceView {
	v := r.v
	v.Devices = append([]DeviceEntry(nil), r.v.Devices...)
	return v
}
