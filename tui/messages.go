package tui

import (
	"moviebrowser/movie"
	"moviebrowser/movieui"
)

// Custom tea.Msg types for the UI

// UIStateMsg carries a new movie list state from the view model
type UIStateMsg struct {
	State movieui.MovieMainUIState
}

// SortTypeMsg carries the selected sort type
type SortTypeMsg struct {
	SortType movie.SortType
}

// DropdownMsg is a one-shot request to open or close the sort chooser
type DropdownMsg struct {
	Visible bool
}

// closedMsg is sent once a view model stream has ended
type closedMsg struct{}
