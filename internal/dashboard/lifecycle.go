package dashboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/api"
)

const (
	ClearQuestion = "Clear chart data? (The exported file is not affected)"

	DefaultExportName = "sensor_data.csv"
	JSONExportName    = "export_data.json"

	msgClearFailed   = "Failed to clear data"
	msgSummaryFailed = "Failed to load data summary"
)

// ChartResetter is the part of the chart engine the lifecycle controller
// needs after a clear.
type ChartResetter interface {
	Init()
}

// Lifecycle handles the data-level user actions: clearing the backend buffer
// and exporting what it holds.
type Lifecycle struct {
	gw        DataGateway
	chart     ChartResetter
	prompt    Prompter
	exportDir string
	log       zerolog.Logger

	wg sync.WaitGroup
}

func NewLifecycle(gw DataGateway, chart ChartResetter, prompt Prompter, exportDir string, log zerolog.Logger) *Lifecycle {
	if exportDir == "" {
		exportDir = "."
	}
	return &Lifecycle{
		gw:        gw,
		chart:     chart,
		prompt:    prompt,
		exportDir: exportDir,
		log:       log.With().Str("component", "lifecycle").Logger(),
	}
}

// Clear asks for confirmation and, if accepted, clears the backend buffer.
// The chart is reset once the backend answered, whatever the answer says.
// It reports whether a request was issued.
func (l *Lifecycle) Clear(ctx context.Context) bool {
	if !l.prompt.Confirm(ClearQuestion) {
		return false
	}

	l.goAction(func() {
		msg, err := l.gw.ClearData(ctx)
		if err != nil {
			l.log.Error().Err(err).Msg("clear failed")
			l.prompt.Alert(msgClearFailed)
			return
		}
		l.prompt.Alert(msg)
		l.chart.Init()
		l.log.Info().Msg("chart data cleared")
	})
	return true
}

// Export saves the backend's CSV file into the export directory.
func (l *Lifecycle) Export(ctx context.Context) {
	l.goAction(func() {
		path, err := l.save(ctx, DefaultExportName, func(w io.Writer) (string, error) {
			return l.gw.Download(ctx, w)
		})
		if err != nil {
			l.log.Error().Err(err).Msg("export failed")
			return
		}
		l.log.Info().Str("path", path).Msg("csv exported")
	})
}

// ExportJSON saves the backend's JSON export next to the CSV one.
func (l *Lifecycle) ExportJSON(ctx context.Context) {
	l.goAction(func() {
		path, err := l.save(ctx, JSONExportName, func(w io.Writer) (string, error) {
			return "", l.gw.ExportData(ctx, w)
		})
		if err != nil {
			l.log.Error().Err(err).Msg("json export failed")
			return
		}
		l.log.Info().Str("path", path).Msg("json exported")
	})
}

// Summary shows the backend's data summary as an acknowledgment.
func (l *Lifecycle) Summary(ctx context.Context) {
	l.goAction(func() {
		s, err := l.gw.DataSummary(ctx)
		if err != nil {
			l.log.Error().Err(err).Msg("summary failed")
			l.prompt.Alert(msgSummaryFailed)
			return
		}
		l.prompt.Alert(FormatSummary(s))
	})
}

func (l *Lifecycle) Wait() {
	l.wg.Wait()
}

func (l *Lifecycle) goAction(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// save streams fetch into a temporary file and renames it once complete, so
// a failed transfer never leaves a truncated export behind.
func (l *Lifecycle) save(ctx context.Context, fallback string, fetch func(io.Writer) (string, error)) (string, error) {
	if err := os.MkdirAll(l.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(l.exportDir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	name, err := fetch(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if name == "" {
		name = fallback
	}
	path := filepath.Join(l.exportDir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move export into place: %w", err)
	}
	return path, nil
}

func FormatSummary(s *api.DataSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total points: %d", s.TotalPoints)

	if s.TimeRange.Start != nil && s.TimeRange.End != nil {
		fmt.Fprintf(&b, "\nTime range: %d - %d", *s.TimeRange.Start, *s.TimeRange.End)
	}

	names := make([]string, 0, len(s.SensorRanges))
	for name := range s.SensorRanges {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := s.SensorRanges[name]
		fmt.Fprintf(&b, "\n%s: min %.2f, max %.2f, avg %.2f", name, r.Min, r.Max, r.Avg)
	}
	return b.String()
}
