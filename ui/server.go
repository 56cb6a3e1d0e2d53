package ui

import (
	"goagree/internal/analysis"

	"github.com/gin-gonic/gin"
)

// Server exposes the agreement engine over a JSON API. It holds no analysis
// state: every request is a self-contained analysis call.
type Server struct {
	router   *gin.Engine
	analyzer *analysis.Analyzer
}

// NewServer creates a new web server instance
func NewServer() *Server {
	s := &Server{
		router:   gin.Default(),
		analyzer: analysis.NewAnalyzer(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	api.GET("/healthz", s.handleHealthz)
	api.POST("/analyze", s.handleAnalyze)
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
