package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Loop is one fixed-cadence fetch-and-render cycle.
type Loop struct {
	Name     string
	Interval time.Duration
	// Immediate fires one tick as soon as the loop starts, before the first period elapses.
	Immediate bool
	Tick      func(ctx context.Context)
}

// Manager runs independent loops. A tick never waits for or cancels the
// previous tick of the same loop; slow ticks simply overlap.
type Manager struct {
	loops       []Loop
	log         zerolog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	ticks       sync.WaitGroup
	startedOnce sync.Once
}

func NewManager(log zerolog.Logger, loops ...Loop) *Manager {
	return &Manager{
		loops: loops,
		log:   log.With().Str("component", "poller").Logger(),
	}
}

func (m *Manager) Start(parent context.Context) {
	m.startedOnce.Do(func() {
		m.ctx, m.cancel = context.WithCancel(parent)
		for _, l := range m.loops {
			if l.Interval <= 0 || l.Tick == nil {
				m.log.Warn().Str("loop", l.Name).Msg("skipping loop without interval or tick")
				continue
			}
			m.wg.Add(1)
			go m.runOne(l)
		}
	})
}

func (m *Manager) runOne(l Loop) {
	defer m.wg.Done()

	m.log.Debug().Str("loop", l.Name).Dur("every", l.Interval).Msg("loop started")

	if l.Immediate {
		m.fire(l)
	}

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			m.log.Debug().Str("loop", l.Name).Msg("loop stopped")
			return
		case <-ticker.C:
			m.fire(l)
		}
	}
}

func (m *Manager) fire(l Loop) {
	m.ticks.Add(1)
	go func() {
		defer m.ticks.Done()
		l.Tick(m.ctx)
	}()
}

// Stop cancels every loop and waits for in-flight ticks to return.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.ticks.Wait()
}
