package dashboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/api"
	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

const ZonePlaceholder = "waiting for detection..."

// IntervalTracker renders the current sampling interval and the zone log.
// The backend is authoritative: every tick replaces the whole list.
type IntervalTracker struct {
	src    IntervalSource
	region *view.IntervalRegion
	log    zerolog.Logger
}

func NewIntervalTracker(src IntervalSource, region *view.IntervalRegion, log zerolog.Logger) *IntervalTracker {
	return &IntervalTracker{
		src:    src,
		region: region,
		log:    log.With().Str("component", "intervals").Logger(),
	}
}

func (t *IntervalTracker) Tick(ctx context.Context) {
	info, err := t.src.IntervalInfo(ctx)
	if err != nil {
		logFailure(ctx, t.log, err, "interval poll failed")
		return
	}

	zones := make([]string, 0, len(info.Zones))
	for _, z := range info.Zones {
		zones = append(zones, ZoneLine(z))
	}

	t.region.Render(IntervalLabel(info.CurrentInterval), zones, ZonePlaceholder)
}

func IntervalLabel(ms int64) string {
	return fmt.Sprintf("current interval: %d ms (%.2f s)", ms, float64(ms)/1000)
}

func ZoneLine(z api.IntervalZone) string {
	return fmt.Sprintf("Timestamp %d: %dms → %dms", z.Timestamp, z.OldInterval, z.NewInterval)
}
