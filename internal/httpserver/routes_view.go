package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rin0913/telemetry-dashboard/internal/plot"
)

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) viewState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.board.Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("encode view snapshot")
	}
}

func (s *Server) chartPNG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := plot.RenderPNG(&buf, s.board.Chart.Snapshot(), s.chartWidth, s.chartHeight)
	if errors.Is(err, plot.ErrNotEnoughPoints) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) registerViewRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /api/view", s.viewState)
	mux.HandleFunc("GET /chart.png", s.chartPNG)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Telemetry Dashboard</title>
<style>
  body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #333; }
  #status.connected { color: #2e7d32; }
  #status.connecting { color: #ef6c00; }
  #banner { display: none; background: #4ECDC4; color: #fff; padding: 6px 10px; border-radius: 6px; }
  #chart { max-width: 100%; }
  pre { background: #f6f6f6; padding: 8px; }
</style>
</head>
<body>
<h1>Telemetry Dashboard</h1>
<p>Status: <strong id="status"></strong></p>
<p id="banner">New data received</p>
<p id="interval"></p>
<pre id="zones"></pre>
<img id="chart" alt="">
<pre id="devices"></pre>
<pre id="acks"></pre>
<script>
const $ = (id) => document.getElementById(id);
const render = {
  status: (d) => { $("status").textContent = d.text; $("status").className = d.class; },
  banner: (d) => { $("banner").style.display = d.visible ? "block" : "none"; },
  intervals: (d) => { $("interval").textContent = d.label; $("zones").textContent = (d.zones || []).join("\n") || d.placeholder; },
  chart: () => { $("chart").src = "/chart.png?t=" + Date.now(); },
  devices: (d) => { if (d.visible) $("devices").textContent = d.devices.map((x, i) => (i + 1) + ") " + x.name + " (" + x.address + ")").join("\n"); },
  ack: (d) => { $("acks").textContent = d + "\n" + $("acks").textContent; },
  snapshot: (d) => { for (const k of ["status", "banner", "intervals", "chart", "devices"]) render[k](d[k]); },
};
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => { const m = JSON.parse(ev.data); if (render[m.region]) render[m.region](m.data); };
</script>
</body>
</html>`
