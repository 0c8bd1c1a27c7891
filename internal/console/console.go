package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

var ErrQuit = errors.New("console: quit requested")

type DeviceActions interface {
	Scan(ctx context.Context)
	Connect(ctx context.Context, address, name string) bool
	QuickConnect(ctx context.Context)
	Disconnect(ctx context.Context)
}

type DataActions interface {
	Clear(ctx context.Context) bool
	Export(ctx context.Context)
	ExportJSON(ctx context.Context)
	Summary(ctx context.Context)
}

type DeviceSource interface {
	Snapshot() view.DeviceView
}

const helpText = `commands:
  scan            scan for devices
  devices         list the last scan result
  connect <n>     connect to device n of the list
  start           connect to the default device
  disconnect      disconnect the current device
  clear           clear chart data
  export          save the CSV file into the export directory
  export-json     save the JSON export into the export directory
  summary         show the data summary
  help            show this help
  quit            stop the dashboard`

// Console turns typed commands into dashboard actions.
type Console struct {
	devices DeviceActions
	data    DataActions
	list    DeviceSource
	lines   <-chan string
	out     *Printer
	log     zerolog.Logger
}

func New(devices DeviceActions, data DataActions, list DeviceSource, lines <-chan string, out *Printer, log zerolog.Logger) *Console {
	return &Console{
		devices: devices,
		data:    data,
		list:    list,
		lines:   lines,
		out:     out,
		log:     log.With().Str("component", "console").Logger(),
	}
}

// Run reads commands until the input ends or ctx is done. It returns ErrQuit
// when the user asked to stop.
func (c *Console) Run(ctx context.Context) error {
	c.out.Println(`type "help" for commands`)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-c.lines:
			if !ok {
				c.log.Debug().Msg("input closed")
				return nil
			}
			if err := c.exec(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (c *Console) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "help", "?":
		c.out.Println(helpText)
	case "scan":
		c.devices.Scan(ctx)
	case "devices":
		c.out.Println("[devices]\n" + DeviceList(c.list.Snapshot().Devices))
	case "connect":
		c.connect(ctx, args)
	case "start":
		c.devices.QuickConnect(ctx)
	case "disconnect":
		c.devices.Disconnect(ctx)
	case "clear":
		c.data.Clear(ctx)
	case "export":
		c.data.Export(ctx)
	case "export-json":
		c.data.ExportJSON(ctx)
	case "summary":
		c.data.Summary(ctx)
	case "quit", "exit":
		return ErrQuit
	default:
		c.out.Println("unknown command: " + cmd)
	}
	return nil
}

func (c *Console) connect(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.out.Println("usage: connect <n>")
		return
	}

	devices := c.list.Snapshot().Devices
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(devices) {
		c.out.Println("no such device: " + args[0] + ` (run "scan" first)`)
		return
	}

	d := devices[n-1]
	if !c.devices.Connect(ctx, d.Address, d.Name) {
		c.out.Println("connection cancelled")
	}
}
