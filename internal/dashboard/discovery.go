package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

const (
	ScanningText = "Scanning..."

	msgScanFailed       = "Failed to scan devices"
	msgConnectFailed    = "Failed to connect to device"
	msgStartFailed      = "Failed to start connection"
	msgDisconnectFailed = "Failed to disconnect"
)

type DiscoveryState int32

const (
	StateIdle DiscoveryState = iota
	StateScanning
	StatePresented
	StateConfirming
)

func (s DiscoveryState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StatePresented:
		return "presented"
	case StateConfirming:
		return "confirming"
	default:
		return fmt.Sprintf("DiscoveryState(%d)", int32(s))
	}
}

// Discovery drives scanning and connection actions. Actions are
// fire-and-forget: nothing stops the user from starting another one while a
// request is still in flight.
type Discovery struct {
	gw      DeviceGateway
	status  *view.StatusRegion
	devices *view.DeviceRegion
	prompt  Prompter
	log     zerolog.Logger

	mu    sync.Mutex
	state DiscoveryState

	wg sync.WaitGroup
}

func NewDiscovery(gw DeviceGateway, status *view.StatusRegion, devices *view.DeviceRegion, prompt Prompter, log zerolog.Logger) *Discovery {
	return &Discovery{
		gw:      gw,
		status:  status,
		devices: devices,
		prompt:  prompt,
		log:     log.With().Str("component", "discovery").Logger(),
	}
}

func (d *Discovery) State() DiscoveryState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Discovery) setState(s DiscoveryState) DiscoveryState {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.state
	d.state = s
	return prev
}

// Scan shows the scanning label right away and requests a scan in the
// background. The status poller overwrites the label on its next success.
func (d *Discovery) Scan(ctx context.Context) {
	d.setState(StateScanning)
	d.status.SetText(ScanningText)

	d.goAction(func() {
		res, err := d.gw.Scan(ctx)
		if err != nil {
			d.log.Error().Err(err).Msg("scan failed")
			d.setState(StateIdle)
			d.prompt.Alert(msgScanFailed)
			return
		}

		entries := make([]view.DeviceEntry, 0, len(res.Devices))
		for _, dev := range res.Devices {
			entries = append(entries, view.DeviceEntry{Address: dev.Address, Name: dev.Name})
		}
		d.devices.Replace(entries)

		if len(entries) > 0 {
			d.setState(StatePresented)
		} else {
			d.setState(StateIdle)
		}
		d.log.Info().Int("devices", len(entries)).Msg("scan finished")
		d.prompt.Alert(res.Message)
	})
}

// Connect asks the user to confirm and, if accepted, requests a connection to
// address. It reports whether a request was issued.
func (d *Discovery) Connect(ctx context.Context, address, name string) bool {
	prev := d.setState(StateConfirming)
	if !d.prompt.Confirm(fmt.Sprintf("Connect to device: %s?", name)) {
		d.setState(prev)
		return false
	}
	d.setState(StateIdle)

	d.goAction(func() {
		msg, err := d.gw.Connect(ctx, address)
		if err != nil {
			d.log.Error().Err(err).Str("address", address).Msg("connect failed")
			d.prompt.Alert(msgConnectFailed)
			return
		}
		d.log.Info().Str("address", address).Msg("connect requested")
		d.prompt.Alert(msg)
	})
	return true
}

// QuickConnect asks the backend to find and connect to the default device.
func (d *Discovery) QuickConnect(ctx context.Context) {
	d.goAction(func() {
		msg, err := d.gw.QuickConnect(ctx)
		if err != nil {
			d.log.Error().Err(err).Msg("quick connect failed")
			d.prompt.Alert(msgStartFailed)
			return
		}
		d.prompt.Alert(msg)
	})
}

func (d *Discovery) Disconnect(ctx context.Context) {
	d.goAction(func() {
		msg, err := d.gw.Disconnect(ctx)
		if err != nil {
			d.log.Error().Err(err).Msg("disconnect failed")
			d.prompt.Alert(msgDisconnectFailed)
			return
		}
		d.prompt.Alert(msg)
	})
}

// Wait blocks until every action started so far has finished.
func (d *Discovery) Wait() {
	d.wg.Wait()
}

func (d *Discovery) goAction(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn()
	}()
}
