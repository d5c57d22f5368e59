package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and a movie screen is attached
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	screen := "ready"
	if s.MovieScreen == nil {
		screen = "missing"
	}
	return writeSuccess(c, http.StatusOK, map[string]string{
		"status":      "OK",
		"movieScreen": screen,
	})
}
