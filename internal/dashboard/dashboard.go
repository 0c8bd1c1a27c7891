package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/config"
	"github.com/Rin0913/telemetry-dashboard/internal/plot"
	"github.com/Rin0913/telemetry-dashboard/internal/poller"
	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

type Options struct {
	Fragments     Fragments
	Palette       plot.Palette
	StatusEvery   time.Duration
	IntervalEvery time.Duration
	ChartEvery    time.Duration
	Notification  time.Duration
	ExportDir     string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Fragments: Fragments{
			Connected:  cfg.Status.Connected,
			Connecting: cfg.Status.Connecting,
		},
		Palette: plot.Palette{
			Colors:   cfg.Chart.LEDColors,
			Fallback: cfg.Chart.FallbackColor,
		},
		StatusEvery:   cfg.Polling.StatusEvery(),
		IntervalEvery: cfg.Polling.IntervalEvery(),
		ChartEvery:    cfg.Polling.ChartEvery(),
		Notification:  cfg.Polling.Notification(),
		ExportDir:     cfg.Backend.ExportDir,
	}
}

// Dashboard ties the pollers and the action controllers to one board.
type Dashboard struct {
	Status    *StatusPoller
	Intervals *IntervalTracker
	Chart     *ChartEngine
	Discovery *Discovery
	Lifecycle *Lifecycle

	board   *view.Board
	manager *poller.Manager
	log     zerolog.Logger
}

func New(b Backend, board *view.Board, prompt Prompter, opts Options, log zerolog.Logger) *Dashboard {
	d := &Dashboard{
		Status:    NewStatusPoller(b, board.Status, board.Banner, opts.Fragments, opts.Notification, log),
		Intervals: NewIntervalTracker(b, board.Intervals, log),
		Chart:     NewChartEngine(b, board.Chart, opts.Palette, log),
		Discovery: NewDiscovery(b, board.Status, board.Devices, prompt, log),
		board:     board,
		log:       log,
	}
	d.Lifecycle = NewLifecycle(b, d.Chart, prompt, opts.ExportDir, log)

	// Status and intervals fire once right away; the chart waits for its
	// first period after Init.
	d.manager = poller.NewManager(log,
		poller.Loop{Name: "status", Interval: opts.StatusEvery, Immediate: true, Tick: d.Status.Tick},
		poller.Loop{Name: "intervals", Interval: opts.IntervalEvery, Immediate: true, Tick: d.Intervals.Tick},
		poller.Loop{Name: "chart", Interval: opts.ChartEvery, Tick: d.Chart.Tick},
	)
	return d
}

func (d *Dashboard) Board() *view.Board {
	return d.board
}

// Start initializes the chart and starts every loop. It returns immediately.
func (d *Dashboard) Start(ctx context.Context) {
	d.Chart.Init()
	d.manager.Start(ctx)
	d.log.Info().Msg("dashboard started")
}

// Stop halts the loops and waits for in-flight ticks and actions.
func (d *Dashboard) Stop() {
	d.manager.Stop()
	d.Discovery.Wait()
	d.Lifecycle.Wait()
	d.log.Info().Msg("dashboard stopped")
}
