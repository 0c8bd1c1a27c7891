package httpserver

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

// Server exposes the board to browsers: a JSON snapshot, the chart as PNG and
// a websocket stream of region changes.
type Server struct {
	board *view.Board
	hub   *Hub

	chartWidth  int
	chartHeight int

	log zerolog.Logger
}

func NewServer(board *view.Board, hub *Hub, chartWidth, chartHeight int, log zerolog.Logger) *Server {
	return &Server{
		board:       board,
		hub:         hub,
		chartWidth:  chartWidth,
		chartHeight: chartHeight,
		log:         log.With().Str("component", "httpserver").Logger(),
	}
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	s.registerHealthRoutes(mux)
	s.registerViewRoutes(mux)
	s.registerStreamRoutes(mux)
}
