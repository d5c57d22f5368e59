package httpserver

import (
	"context"
	"moviebrowser/errs"
	"moviebrowser/movie"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleGetMovies)
	g.POST("/movies/retry", s.handleRetryLoadMovies)
	g.GET("/movies/sort", s.handleGetSortType)
	g.PUT("/movies/sort", s.handleSetSortType)
	g.GET("/movies/dropdown", s.handleNextDropdown)
	g.POST("/movies/dropdown", s.handleSetDropdown)
}

func (s *Server) movieScreen() error {
	if s.MovieScreen == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie screen not configured")
	}
	return nil
}

// handleGetMovies godoc
// @Summary Movie list state
// @Description Current movie list with loading, error and success flags
// @Tags movies
// @Produce json
// @Success 200 {object} movieui.MovieMainUIState
// @Router /api/movies [get]
func (s *Server) handleGetMovies(c echo.Context) error {
	if err := s.movieScreen(); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, s.MovieScreen.CurrentUIState())
}

// handleRetryLoadMovies godoc
// @Summary Retry loading movies
// @Tags movies
// @Success 202 {object} APIResponse
// @Router /api/movies/retry [post]
func (s *Server) handleRetryLoadMovies(c echo.Context) error {
	if err := s.movieScreen(); err != nil {
		return err
	}
	s.MovieScreen.RetryLoadMovies()
	return writeSuccess(c, http.StatusAccepted, nil)
}

// handleGetSortType godoc
// @Summary Selected sort type
// @Tags movies
// @Produce json
// @Success 200 {object} SortTypeResponse
// @Router /api/movies/sort [get]
func (s *Server) handleGetSortType(c echo.Context) error {
	if err := s.movieScreen(); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, SortTypeResponse{SortType: s.MovieScreen.CurrentSortType()})
}

// handleSetSortType godoc
// @Summary Select sort type
// @Description Changing the sort type reloads the movie list
// @Tags movies
// @Accept json
// @Produce json
// @Param body body SetSortTypeRequest true "Sort type"
// @Success 200 {object} SortTypeResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies/sort [put]
func (s *Server) handleSetSortType(c echo.Context) error {
	if err := s.movieScreen(); err != nil {
		return err
	}

	var req SetSortTypeRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	sortType, err := movie.ParseSortType(req.SortType)
	if err != nil {
		return err
	}

	s.MovieScreen.SetSelectedSortType(sortType)
	return writeSuccess(c, http.StatusOK, SortTypeResponse{SortType: s.MovieScreen.CurrentSortType()})
}

// handleSetDropdown godoc
// @Summary Request dropdown visibility
// @Tags movies
// @Accept json
// @Param body body SetDropdownRequest true "Visibility"
// @Success 202 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies/dropdown [post]
func (s *Server) handleSetDropdown(c echo.Context) error {
	if err := s.movieScreen(); err != nil {
		return err
	}

	var req SetDropdownRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.MovieScreen.SetShowDropdown(*req.Visible)
	return writeSuccess(c, http.StatusAccepted, nil)
}

// handleNextDropdown godoc
// @Summary Wait for the next dropdown request
// @Description Each request is delivered to one caller only
// @Tags movies
// @Produce json
// @Success 200 {object} DropdownResponse
// @Success 204
// @Router /api/movies/dropdown [get]
func (s *Server) handleNextDropdown(c echo.Context) error {
	if err := s.movieScreen(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.DropdownWait)
	defer cancel()

	visible, ok := s.MovieScreen.NextShowDropdown(ctx)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return writeSuccess(c, http.StatusOK, DropdownResponse{Visible: visible})
}
