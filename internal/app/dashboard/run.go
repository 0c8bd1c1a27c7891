package dashboard

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/api"
	"github.com/Rin0913/telemetry-dashboard/internal/config"
	"github.com/Rin0913/telemetry-dashboard/internal/console"
	engine "github.com/Rin0913/telemetry-dashboard/internal/dashboard"
	"github.com/Rin0913/telemetry-dashboard/internal/httpserver"
	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

// Run starts the dashboard and blocks until ctx is done, the user quits from
// the console or the view server fails. A nil in disables the console.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), log)

	printer := console.NewPrinter(out)
	hub := httpserver.NewHub(log)
	board := view.NewBoard(view.Fanout{printer, hub})
	defer hub.Close()

	var lines <-chan string
	if in != nil {
		lines = console.Lines(in)
	}
	prompt := console.NewTerminal(ctx, lines, printer, view.Fanout{printer, hub})

	dash := engine.New(client, board, prompt, engine.OptionsFromConfig(cfg), log)
	dash.Start(ctx)
	defer dash.Stop()

	log.Info().Str("backend", client.BaseURL()).Msg("polling backend")

	errCh := make(chan error, 1)

	var s *http.Server
	if cfg.View.Listen != "" {
		mux := http.NewServeMux()
		httpserver.NewServer(board, hub, cfg.Chart.Width, cfg.Chart.Height, log).RegisterRoutes(mux)

		ln, err := net.Listen("tcp", cfg.View.Listen)
		if err != nil {
			return err
		}
		s = &http.Server{
			Handler:        mux,
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		}

		go func() {
			log.Info().Str("addr", ln.Addr().String()).Msg("view server listening")
			if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	if lines != nil {
		c := console.New(dash.Discovery, dash.Lifecycle, board.Devices, lines, printer, log)
		go func() {
			if err := c.Run(ctx); errors.Is(err, console.ErrQuit) {
				log.Info().Msg("quit requested")
				cancel()
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		if s == nil {
			return nil
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()

		hub.Close()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil

	case err := <-errCh:
		return err
	}
}
