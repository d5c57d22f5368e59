package tui

import (
	"fmt"
	"io"
	"moviebrowser/movie"
	"moviebrowser/movieui"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// MovieItem represents a movie row in the list UI
type MovieItem struct {
	Record movieui.MovieUiRecord
}

func (i MovieItem) Title() string {
	if i.Record.ReleaseYear == "" {
		return i.Record.Title
	}
	return fmt.Sprintf("%s (%s)", i.Record.Title, i.Record.ReleaseYear)
}

func (i MovieItem) Description() string {
	return fmt.Sprintf("★ %s  ·  %s votes", i.Record.Rating, i.Record.Votes)
}

func (i MovieItem) FilterValue() string {
	return i.Record.Title
}

// SortItem is one entry of the sort chooser
type SortItem struct {
	SortType movie.SortType
}

func (i SortItem) FilterValue() string {
	return i.SortType.Label()
}

// sortDelegate renders sort choices one per line
type sortDelegate struct{}

func (d sortDelegate) Height() int                               { return 1 }
func (d sortDelegate) Spacing() int                              { return 0 }
func (d sortDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d sortDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(SortItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, SelectedStyle.Render("> "+i.SortType.Label()))
	} else {
		fmt.Fprint(w, "  "+i.SortType.Label())
	}
}

func toMovieItems(records []movieui.MovieUiRecord) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = MovieItem{Record: r}
	}
	return items
}
