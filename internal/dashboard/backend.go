package dashboard

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/api"
)

type StatusSource interface {
	Status(ctx context.Context) (*api.StatusSnapshot, error)
}

type IntervalSource interface {
	IntervalInfo(ctx context.Context) (*api.IntervalInfo, error)
}

type ChartSource interface {
	ChartData(ctx context.Context) ([]api.Reading, error)
}

type DeviceGateway interface {
	Scan(ctx context.Context) (*api.ScanResult, error)
	QuickConnect(ctx context.Context) (string, error)
	Connect(ctx context.Context, address string) (string, error)
	Disconnect(ctx context.Context) (string, error)
}

type DataGateway interface {
	ClearData(ctx context.Context) (string, error)
	Download(ctx context.Context, w io.Writer) (string, error)
	ExportData(ctx context.Context, w io.Writer) error
	DataSummary(ctx context.Context) (*api.DataSummary, error)
}

// Backend is everything the dashboard consumes from the gateway.
type Backend interface {
	StatusSource
	IntervalSource
	ChartSource
	DeviceGateway
	DataGateway
}

// Prompter is the user-decision boundary. Confirm blocks the calling action
// only; Alert shows a message the user has to acknowledge.
type Prompter interface {
	Confirm(question string) bool
	Alert(message string)
}

// logFailure records a swallowed failure. Failures caused by shutdown are not
// worth a warning.
func logFailure(ctx context.Context, log zerolog.Logger, err error, msg string) {
	if ctx.Err() != nil && errors.Is(err, api.ErrTransport) {
		log.Debug().Err(err).Msg(msg)
		return
	}
	log.Warn().Err(err).Msg(msg)
}
