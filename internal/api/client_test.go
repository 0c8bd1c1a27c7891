package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/e2e"
)

func newClient(url string) *Client {
	return NewClient(url, 2*time.Second, zerolog.Nop())
}

func TestClient_StatusAndIntervals(t *testing.T) {
	b := e2e.NewBackend(t)
	b.SetStatus("Conectado!", true)
	b.SetIntervals(250,
		e2e.Zone{Timestamp: 10, OldInterval: 1000, NewInterval: 500},
		e2e.Zone{Timestamp: 20, OldInterval: 500, NewInterval: 250},
	)

	c := newClient(b.URL())
	ctx := context.Background()

	s, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if s.Status != "Conectado!" || !s.NewData {
		t.Fatalf("unexpected status: %+v", s)
	}

	info, err := c.IntervalInfo(ctx)
	if err != nil {
		t.Fatalf("IntervalInfo: %v", err)
	}
	if info.CurrentInterval != 250 || len(info.Zones) != 2 {
		t.Fatalf("unexpected interval info: %+v", info)
	}
	if info.Zones[1].OldInterval != 500 || info.Zones[1].NewInterval != 250 {
		t.Fatalf("zone not decoded: %+v", info.Zones[1])
	}
}

func TestClient_ChartData(t *testing.T) {
	b := e2e.NewBackend(t)
	b.SetReadings(
		e2e.Reading{Timestamp: 0, Sensors: []float64{1, 2, 3, 4}, LED: 0},
		e2e.Reading{Timestamp: 100, Sensors: []float64{5, 6, 7, 8}, LED: 1},
	)

	rs, err := newClient(b.URL()).ChartData(context.Background())
	if err != nil {
		t.Fatalf("ChartData: %v", err)
	}
	if len(rs) != 2 || rs[1].Timestamp != 100 || rs[1].LED != 1 || rs[1].Sensors[3] != 8 {
		t.Fatalf("unexpected readings: %+v", rs)
	}
}

func TestClient_SetsRequestID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(requestIDHeader)
		_, _ = w.Write([]byte(`{"status":"Desconectado","new_data":false}`))
	}))
	defer srv.Close()

	if _, err := newClient(srv.URL).Status(context.Background()); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", got, err)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	b := e2e.NewBackend(t)
	b.Break("/api/status")

	_, err := newClient(b.URL()).Status(context.Background())
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url).ChartData(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClient_BusinessFailureIsAMessage(t *testing.T) {
	b := e2e.NewBackend(t)

	msg, err := newClient(b.URL()).Connect(context.Background(), "")
	if err != nil {
		t.Fatalf("a 400 with a message body must not be an error: %v", err)
	}
	if msg != "Endereço do dispositivo não fornecido." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestClient_Download(t *testing.T) {
	b := e2e.NewBackend(t)
	b.SetCSV("a,b\n1,2\n")

	var buf bytes.Buffer
	name, err := newClient(b.URL()).Download(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if name != "dados_ble.csv" {
		t.Fatalf("file name = %q", name)
	}
	if buf.String() != "a,b\n1,2\n" {
		t.Fatalf("body = %q", buf.String())
	}
}

func TestClient_DataSummary(t *testing.T) {
	b := e2e.NewBackend(t)
	b.SetReadings(
		e2e.Reading{Timestamp: 5, Sensors: []float64{1, 2, 3, 4}},
		e2e.Reading{Timestamp: 9, Sensors: []float64{3, 2, 1, 0}},
	)

	s, err := newClient(b.URL()).DataSummary(context.Background())
	if err != nil {
		t.Fatalf("DataSummary: %v", err)
	}
	if s.TotalPoints != 2 || s.TimeRange.Start == nil || *s.TimeRange.End != 9 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if r := s.SensorRanges["sensor_1"]; r.Min != 1 || r.Max != 3 || r.Avg != 2 {
		t.Fatalf("sensor_1 range = %+v", r)
	}
}

func TestAttachmentName(t *testing.T) {
	cases := map[string]string{
		`attachment; filename="dados_ble.csv"`: "dados_ble.csv",
		`attachment; filename="../../etc/x"`:   "x",
		``:                                     "",
		`garbage;;`:                            "",
	}
	for in, want := range cases {
		if got := attachmentName(in); got != want {
			t.Fatalf("attachmentName(%q) = %q, want %q", in, got, want)
		}
	}
}
