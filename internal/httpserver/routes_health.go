package httpserver

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status        string `json:"status"`
	Viewers       int    `json:"viewers"`
	BackendStatus string `json:"backend_status"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello!"))
}

// healthDetail reports what the dashboard last heard from the backend.
func (s *Server) healthDetail(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Viewers:       s.hub.Clients(),
		BackendStatus: s.board.Status.Snapshot().Text,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) registerHealthRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /api/health", s.healthDetail)
}
