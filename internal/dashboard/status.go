package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

// StatusPoller keeps the connection label and the new-data banner current.
type StatusPoller struct {
	src       StatusSource
	region    *view.StatusRegion
	banner    *view.Banner
	fragments Fragments
	window    time.Duration
	log       zerolog.Logger
}

func NewStatusPoller(src StatusSource, region *view.StatusRegion, banner *view.Banner, fragments Fragments, window time.Duration, log zerolog.Logger) *StatusPoller {
	return &StatusPoller{
		src:       src,
		region:    region,
		banner:    banner,
		fragments: fragments,
		window:    window,
		log:       log.With().Str("component", "status").Logger(),
	}
}

func (p *StatusPoller) Tick(ctx context.Context) {
	s, err := p.src.Status(ctx)
	if err != nil {
		logFailure(ctx, p.log, err, "status poll failed")
		return
	}

	p.region.Set(s.Status, Classify(s.Status, p.fragments))

	if s.NewData {
		p.banner.Show(p.window)
	}
}
