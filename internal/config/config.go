package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Polling PollingConfig `yaml:"polling"`
	Status  StatusConfig  `yaml:"status"`
	Chart   ChartConfig   `yaml:"chart"`
	View    ViewConfig    `yaml:"view"`
	Log     LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	ExportDir string `yaml:"export_dir"`
}

type PollingConfig struct {
	StatusMs       int `yaml:"status_ms"`
	IntervalMs     int `yaml:"interval_ms"`
	ChartMs        int `yaml:"chart_ms"`
	NotificationMs int `yaml:"notification_ms"`
}

// StatusConfig holds the phrase fragments the backend uses in its status text.
// Matching is case-sensitive substring containment.
type StatusConfig struct {
	Connected  []string `yaml:"connected"`
	Connecting []string `yaml:"connecting"`
}

type ChartConfig struct {
	LEDColors     map[int]string `yaml:"led_colors"`
	FallbackColor string         `yaml:"fallback_color"`
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
}

type ViewConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:   "http://127.0.0.1:5000",
			TimeoutMs: 10000,
			ExportDir: ".",
		},
		Polling: PollingConfig{
			StatusMs:       2000,
			IntervalMs:     1000,
			ChartMs:        1000,
			NotificationMs: 4000,
		},
		Status: StatusConfig{
			Connected:  []string{"Conectado"},
			Connecting: []string{"Conectando", "Procurando"},
		},
		Chart: ChartConfig{
			LEDColors: map[int]string{
				0: "rgba(255, 107, 107, 0.4)",
				1: "rgba(78, 205, 196, 0.4)",
				2: "rgba(69, 183, 209, 0.4)",
				3: "rgba(150, 206, 180, 0.4)",
			},
			FallbackColor: "rgba(200, 200, 200, 0.1)",
			Width:         1024,
			Height:        480,
		},
		View: ViewConfig{
			Listen: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DASHBOARD_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v, ok := os.LookupEnv("DASHBOARD_VIEW_ADDR"); ok {
		cfg.View.Listen = v
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DASHBOARD_EXPORT_DIR"); v != "" {
		cfg.Backend.ExportDir = v
	}
}

func (p PollingConfig) StatusEvery() time.Duration   { return ms(p.StatusMs) }
func (p PollingConfig) IntervalEvery() time.Duration { return ms(p.IntervalMs) }
func (p PollingConfig) ChartEvery() time.Duration    { return ms(p.ChartMs) }
func (p PollingConfig) Notification() time.Duration  { return ms(p.NotificationMs) }

func (b BackendConfig) Timeout() time.Duration { return ms(b.TimeoutMs) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
