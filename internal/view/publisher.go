package view

const (
	RegionStatus    = "status"
	RegionBanner    = "banner"
	RegionIntervals = "intervals"
	RegionChart     = "chart"
	RegionDevices   = "devices"
	RegionAck       = "ack"
)

// Publisher receives every region change. Implementations must not call back
// into the regions.
type Publisher interface {
	Publish(region string, data any)
}

type Fanout []Publisher

func (f Fanout) Publish(region string, data any) {
	for _, p := range f {
		if p != nil {
			p.Publish(region, data)
		}
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
