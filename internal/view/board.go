package view

import "github.com/Rin0913/telemetry-dashboard/internal/plot"

// Board groups the render regions. Regions share nothing but the publisher.
type Board struct {
	Status    *StatusRegion
	Banner    *Banner
	Intervals *IntervalRegion
	Chart     *ChartRegion
	Devices   *DeviceRegion
}

func NewBoard(pub Publisher) *Board {
	pub = orNop(pub)
	return &Board{
		Status:    &StatusRegion{pub: pub},
		Banner:    &Banner{pub: pub},
		Intervals: &IntervalRegion{pub: pub},
		Chart:     &ChartRegion{fig: plot.NewFigure(), pub: pub},
		Devices:   &DeviceRegion{pub: pub},
	}
}

type Snapshot struct {
	Status    StatusView   `json:"status"`
	Banner    BannerView   `json:"banner"`
	Intervals IntervalView `json:"intervals"`
	Chart     *plot.Figure `json:"chart"`
	Devices   DeviceView   `json:"devices"`
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Status:    b.Status.Snapshot(),
		Banner:    b.Banner.Snapshot(),
		Intervals: b.Intervals.Snapshot(),
		Chart:     b.Chart.Snapshot(),
		Devices:   b.Devices.Snapshot(),
	}
}
