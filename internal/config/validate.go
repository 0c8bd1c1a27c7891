package config

import (
	"fmt"
	"net/url"

	"github.com/Rin0913/telemetry-dashboard/internal/plot"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q: must be an absolute http(s) url", cfg.Backend.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url %q: unsupported scheme %q", cfg.Backend.BaseURL, u.Scheme)
	}
	if cfg.Backend.TimeoutMs < 0 {
		return fmt.Errorf("backend.timeout_ms must be >= 0, got %d", cfg.Backend.TimeoutMs)
	}

	cadences := []struct {
		name string
		v    int
	}{
		{"polling.status_ms", cfg.Polling.StatusMs},
		{"polling.interval_ms", cfg.Polling.IntervalMs},
		{"polling.chart_ms", cfg.Polling.ChartMs},
		{"polling.notification_ms", cfg.Polling.NotificationMs},
	}
	for _, c := range cadences {
		if c.v <= 0 {
			return fmt.Errorf("%s must be > 0, got %d", c.name, c.v)
		}
	}

	for _, f := range append(append([]string{}, cfg.Status.Connected...), cfg.Status.Connecting...) {
		if f == "" {
			return fmt.Errorf("status fragments must not be empty")
		}
	}

	for led, c := range cfg.Chart.LEDColors {
		if _, err := plot.ParseColor(c); err != nil {
			return fmt.Errorf("chart.led_colors[%d]: %w", led, err)
		}
	}
	if _, err := plot.ParseColor(cfg.Chart.FallbackColor); err != nil {
		return fmt.Errorf("chart.fallback_color: %w", err)
	}
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}

	return nil
}
