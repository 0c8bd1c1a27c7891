package api

type StatusSnapshot struct {
	Status  string `json:"status"`
	NewData bool   `json:"new_data"`
}

type IntervalZone struct {
	Timestamp   int64 `json:"timestamp"`
	OldInterval int64 `json:"old_interval"`
	NewInterval int64 `json:"new_interval"`
}

type IntervalInfo struct {
	CurrentInterval int64          `json:"current_interval"`
	Zones           []IntervalZone `json:"zones"`
}

// Reading is one sample. Sensors is expected to hold exactly four values.
type Reading struct {
	Timestamp  int64     `json:"timestamp"`
	Sensors    []float64 `json:"sensors"`
	LED        int       `json:"led"`
	IntervalMS *int64    `json:"interval_ms,omitempty"`
}

type ChartData struct {
	Data []Reading `json:"data"`
}

type Device struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type ScanResult struct {
	Devices []Device `json:"devices"`
	Message string   `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TimeRange struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

type SensorRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

type DataSummary struct {
	TotalPoints  int                    `json:"total_points"`
	TimeRange    TimeRange              `json:"time_range"`
	SensorRanges map[string]SensorRange `json:"sensor_ranges"`
}
