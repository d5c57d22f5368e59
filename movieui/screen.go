package movieui

import (
	"context"
	"moviebrowser/movie"
)

// Screen is the part of the view model used by request/response style
// presentation adapters.
type Screen interface {
	CurrentUIState() MovieMainUIState
	CurrentSortType() movie.SortType
	RetryLoadMovies()
	SetSelectedSortType(s movie.SortType)
	SetShowDropdown(visible bool)
	NextShowDropdown(ctx context.Context) (visible bool, ok bool)
}

var _ Screen = (*ViewModel)(nil)

func (vm *ViewModel) CurrentUIState() MovieMainUIState {
	return vm.uiState.Value()
}

func (vm *ViewModel) CurrentSortType() movie.SortType {
	return vm.sortType.Value()
}

// NextShowDropdown waits for the next dropdown request. ok is false when ctx
// ends first or the view model is closed.
func (vm *ViewModel) NextShowDropdown(ctx context.Context) (bool, bool) {
	select {
	case visible, ok := <-vm.ShowDropdown():
		return visible, ok
	case <-ctx.Done():
		return false, false
	}
}
