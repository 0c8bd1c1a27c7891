package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type Zone struct {
	Timestamp   int64 `json:"timestamp"`
	OldInterval int64 `json:"old_interval"`
	NewInterval int64 `json:"new_interval"`
}

type Reading struct {
	Timestamp int64     `json:"timestamp"`
	Sensors   []float64 `json:"sensors"`
	LED       int       `json:"led"`
}

type Device struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Backend is an in-memory stand-in for the sensor gateway, speaking the same
// HTTP contract the dashboard consumes.
type Backend struct {
	Server *httptest.Server

	mu              sync.Mutex
	status          string
	newData         bool
	currentInterval int64
	zones           []Zone
	readings        []Reading
	devices         []Device
	clearMessage    string
	csv             string
	broken          map[string]bool
	calls           map[string]int
	connected       []string
}

func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		status:          "Desconectado",
		currentInterval: 1000,
		clearMessage:    "Dados do gráfico limpos com sucesso",
		csv:             "sLed,rSensor1,rSensor2,rSensor3,rSensor4,timeStamp,interval_ms\n",
		broken:          make(map[string]bool),
		calls:           make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", b.handleStatus)
	mux.HandleFunc("GET /api/interval_info", b.handleIntervalInfo)
	mux.HandleFunc("GET /api/chart_data", b.handleChartData)
	mux.HandleFunc("GET /api/scan", b.handleScan)
	mux.HandleFunc("GET /api/start", b.handleStart)
	mux.HandleFunc("POST /api/connect", b.handleConnect)
	mux.HandleFunc("GET /api/disconnect", b.handleDisconnect)
	mux.HandleFunc("POST /api/clear_data", b.handleClear)
	mux.HandleFunc("GET /api/data_summary", b.handleSummary)
	mux.HandleFunc("GET /api/export_data", b.handleExport)
	mux.HandleFunc("GET /download", b.handleDownload)

	b.Server = httptest.NewServer(b.count(mux))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

func (b *Backend) SetStatus(status string, newData bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
	b.newData = newData
}

func (b *Backend) SetIntervals(current int64, zones ...Zone) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentInterval = current
	b.zones = zones
}

func (b *Backend) SetReadings(rs ...Reading) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readings = rs
}

func (b *Backend) SetDevices(ds ...Device) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.devices = ds
}

func (b *Backend) SetClearMessage(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearMessage = msg
}

func (b *Backend) SetCSV(csv string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.csv = csv
}

// Break makes path answer 500 with a non-JSON body.
func (b *Backend) Break(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broken[path] = true
}

func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *Backend) Connected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.connected...)
}

func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[r.URL.Path]++
		broken := b.broken[r.URL.Path]
		b.mu.Unlock()

		if broken {
			http.Error(w, "<html>internal error</html>", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) handleStatus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	resp := map[string]any{"status": b.status, "new_data": b.newData}
	b.newData = false
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) handleIntervalInfo(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	zones := append([]Zone{}, b.zones...)
	resp := map[string]any{"current_interval": b.currentInterval, "zones": zones}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) handleChartData(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	data := append([]Reading{}, b.readings...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (b *Backend) handleScan(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	devices := append([]Device{}, b.devices...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Escaneamento concluído. %d dispositivos encontrados.", len(devices)),
		"devices": devices,
	})
}

func (b *Backend) handleStart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != "Desconectado" {
		writeJSON(w, http.StatusOK, map[string]string{"message": "BLE já está ativo"})
		return
	}
	b.status = "Procurando ESP32..."
	writeJSON(w, http.StatusOK, map[string]string{"message": "Iniciando conexão BLE..."})
}

func (b *Backend) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if strings.TrimSpace(req.Address) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Endereço do dispositivo não fornecido."})
		return
	}

	b.mu.Lock()
	b.connected = append(b.connected, req.Address)
	b.status = "Conectando ao dispositivo " + req.Address + "..."
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Conectando ao dispositivo " + req.Address + "..."})
}

func (b *Backend) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.status = "Desconectado"
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Desconectando..."})
}

func (b *Backend) handleClear(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.readings = nil
	msg := b.clearMessage
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (b *Backend) handleSummary(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	data := append([]Reading{}, b.readings...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, summarize(data))
}

func (b *Backend) handleExport(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	data := append([]Reading{}, b.readings...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"chart_data":   data,
		"csv_filename": "data/dados_ble.csv",
		"data_summary": summarize(data),
	})
}

func (b *Backend) handleDownload(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	csv := b.csv
	b.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="dados_ble.csv"`)
	_, _ = w.Write([]byte(csv))
}

func summarize(data []Reading) map[string]any {
	if len(data) == 0 {
		return map[string]any{
			"total_points":  0,
			"time_range":    map[string]any{"start": nil, "end": nil},
			"sensor_ranges": map[string]any{},
		}
	}

	start, end := data[0].Timestamp, data[0].Timestamp
	for _, d := range data {
		start = min(start, d.Timestamp)
		end = max(end, d.Timestamp)
	}

	ranges := make(map[string]any)
	for i := 0; i < 4; i++ {
		lo, hi, sum := data[0].Sensors[i], data[0].Sensors[i], 0.0
		for _, d := range data {
			v := d.Sensors[i]
			lo = min(lo, v)
			hi = max(hi, v)
			sum += v
		}
		ranges[fmt.Sprintf("sensor_%d", i+1)] = map[string]float64{
			"min": lo, "max": hi, "avg": sum / float64(len(data)),
		}
	}

	return map[string]any{
		"total_points":  len(data),
		"time_range":    map[string]any{"start": start, "end": end},
		"sensor_ranges": ranges,
	}
}
