package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/e2e"
	"github.com/Rin0913/telemetry-dashboard/internal/plot"
	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

func startTestServer(t *testing.T) (*httptest.Server, *view.Board, *Hub) {
	t.Helper()

	hub := NewHub(zerolog.Nop())
	board := view.NewBoard(hub)
	s := NewServer(board, hub, 640, 320, zerolog.Nop())

	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return ts, board, hub
}

func fp(v float64) *float64 { return &v }

func TestServer_Health(t *testing.T) {
	ts, board, _ := startTestServer(t)
	board.Status.Set("Conectado", view.ClassConnected)

	resp := e2e.WaitForHealthReady(t, ts.Client(), ts.URL)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read /health body error: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(body) != "Hello!" {
		t.Fatalf("unexpected /health answer: %d %q", resp.StatusCode, body)
	}

	r, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error: %v", err)
	}
	defer r.Body.Close()

	var h healthResponse
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		t.Fatalf("decode /api/health: %v", err)
	}
	if h.Status != "ok" || h.BackendStatus != "Conectado" || h.Viewers != 0 {
		t.Fatalf("unexpected health detail: %+v", h)
	}
}

func TestServer_ViewSnapshot(t *testing.T) {
	ts, board, _ := startTestServer(t)
	board.Status.Set("Procurando ESP32...", view.ClassConnecting)
	board.Intervals.Render("current interval: 250 ms (0.25 s)", nil, "waiting for detection...")

	resp, err := ts.Client().Get(ts.URL + "/api/view")
	if err != nil {
		t.Fatalf("GET /api/view error: %v", err)
	}
	defer resp.Body.Close()

	var snap struct {
		Status    view.StatusView   `json:"status"`
		Intervals view.IntervalView `json:"intervals"`
		Chart     plot.Figure       `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode /api/view: %v", err)
	}
	if snap.Status.Class != view.ClassConnecting || snap.Status.Text != "Procurando ESP32..." {
		t.Fatalf("unexpected status: %+v", snap.Status)
	}
	if snap.Intervals.Placeholder != "waiting for detection..." {
		t.Fatalf("unexpected intervals: %+v", snap.Intervals)
	}
	if len(snap.Chart.Data) != plot.SeriesCount {
		t.Fatalf("expected %d series, got %d", plot.SeriesCount, len(snap.Chart.Data))
	}
}

func TestServer_ChartPNG(t *testing.T) {
	ts, board, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/chart.png")
	if err != nil {
		t.Fatalf("GET /chart.png error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for an empty chart, got %d", resp.StatusCode)
	}

	board.Chart.Redraw(func(f *plot.Figure) {
		var y [plot.SeriesCount][]*float64
		for i := range y {
			y[i] = []*float64{fp(1), fp(2), fp(3)}
		}
		f.Update([]int64{0, 100, 200}, y, []plot.Shape{
			{Type: "rect", XRef: "x", YRef: "paper", X0: 0, X1: 100, Y1: 1, FillColor: "rgba(255, 107, 107, 0.4)", Layer: "below"},
		})
	})

	resp, err = ts.Client().Get(ts.URL + "/chart.png")
	if err != nil {
		t.Fatalf("GET /chart.png error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" || len(body) == 0 {
		t.Fatalf("unexpected chart answer: %d %q (%d bytes)", resp.StatusCode, resp.Header.Get("Content-Type"), len(body))
	}
}

func TestServer_IndexPage(t *testing.T) {
	ts, _, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/ws") {
		t.Fatalf("index page does not open the stream")
	}

	r, err := ts.Client().Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope error: %v", err)
	}
	r.Body.Close()
	if r.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", r.StatusCode)
	}
}

func TestServer_StreamSendsSnapshotThenUpdates(t *testing.T) {
	ts, board, hub := startTestServer(t)
	board.Status.Set("Desconectado", view.ClassNone)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	read := func() Message {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			t.Fatalf("read message: %v", err)
		}
		return m
	}

	if m := read(); m.Region != RegionSnapshot {
		t.Fatalf("expected snapshot first, got %q", m.Region)
	}

	e2e.WaitFor(t, 2*time.Second, "viewer registered", func() bool {
		return hub.Clients() == 1
	})

	board.Status.Set("Conectado", view.ClassConnected)
	hub.Publish(view.RegionAck, "Desconectando...")

	m := read()
	data, _ := m.Data.(map[string]any)
	if m.Region != view.RegionStatus || data["text"] != "Conectado" || data["class"] != "connected" {
		t.Fatalf("unexpected status update: %+v", m)
	}
	if m := read(); m.Region != view.RegionAck || m.Data != "Desconectando..." {
		t.Fatalf("unexpected ack: %+v", m)
	}
}

func TestHub_CloseDisconnectsViewers(t *testing.T) {
	ts, _, hub := startTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	e2e.WaitFor(t, 2*time.Second, "viewer registered", func() bool {
		return hub.Clients() == 1
	})

	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	e2e.WaitFor(t, 2*time.Second, "viewer removed", func() bool {
		return hub.Clients() == 0
	})
}
