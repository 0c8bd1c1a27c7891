package httpserver

import (
	"net/http"
)

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	s.hub.Serve(w, r, Message{Region: RegionSnapshot, Data: s.board.Snapshot()})
}

func (s *Server) registerStreamRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", s.stream)
}
