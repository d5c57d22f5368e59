// Package tui renders the movie list screen in a terminal.
package tui

import (
	"context"
	"fmt"
	"moviebrowser/movie"
	"moviebrowser/movieui"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MovieScreen is the part of the view model the terminal UI drives.
type MovieScreen interface {
	UIState() *movieui.StateFlow[movieui.MovieMainUIState]
	SortType() *movieui.StateFlow[movie.SortType]
	ShowDropdown() <-chan bool
	RetryLoadMovies()
	SetSelectedSortType(s movie.SortType)
	SetShowDropdown(visible bool)
}

// Model represents the UI state
type Model struct {
	Screen MovieScreen

	States    <-chan movieui.MovieMainUIState
	SortTypes <-chan movie.SortType
	Dropdown  <-chan bool

	MovieList       list.Model
	SortList        list.Model
	Spinner         spinner.Model
	State           movieui.MovieMainUIState
	SortType        movie.SortType
	DropdownVisible bool
}

// NewModel subscribes to the screen's streams. The subscriptions end when
// ctx is cancelled or the view model is closed.
func NewModel(ctx context.Context, screen MovieScreen) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	movieDelegate := list.NewDefaultDelegate()
	movieDelegate.Styles.SelectedTitle = movieDelegate.Styles.SelectedTitle.Foreground(lipgloss.Color("#90CEA1"))
	movieDelegate.Styles.SelectedDesc = movieDelegate.Styles.SelectedDesc.Foreground(lipgloss.Color("#90CEA1"))

	movieList := list.New([]list.Item{}, movieDelegate, 0, 0)
	movieList.SetShowStatusBar(false)
	movieList.SetFilteringEnabled(true)
	movieList.SetShowTitle(false)

	sortItems := make([]list.Item, len(movie.SortTypes))
	for i, st := range movie.SortTypes {
		sortItems[i] = SortItem{SortType: st}
	}
	sortList := list.New(sortItems, sortDelegate{}, 24, len(sortItems))
	sortList.SetShowTitle(false)
	sortList.SetShowStatusBar(false)
	sortList.SetShowHelp(false)
	sortList.SetShowPagination(false)
	sortList.SetFilteringEnabled(false)

	return &Model{
		Screen:    screen,
		States:    screen.UIState().Subscribe(ctx),
		SortTypes: screen.SortType().Subscribe(ctx),
		Dropdown:  screen.ShowDropdown(),
		MovieList: movieList,
		SortList:  sortList,
		Spinner:   s,
		State:     screen.UIState().Value(),
		SortType:  screen.SortType().Value(),
	}
}

// Init initializes the UI
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		waitForUIState(m.States),
		waitForSortType(m.SortTypes),
		waitForDropdown(m.Dropdown),
	)
}

func waitForUIState(ch <-chan movieui.MovieMainUIState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return UIStateMsg{State: state}
	}
}

func waitForSortType(ch <-chan movie.SortType) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return SortTypeMsg{SortType: s}
	}
}

func waitForDropdown(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		visible, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return DropdownMsg{Visible: visible}
	}
}

// Update updates the UI state
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.MovieList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case UIStateMsg:
		m.State = msg.State
		cmd := m.MovieList.SetItems(toMovieItems(msg.State.Movies))
		return m, tea.Batch(cmd, waitForUIState(m.States))

	case SortTypeMsg:
		m.SortType = msg.SortType
		return m, waitForSortType(m.SortTypes)

	case DropdownMsg:
		m.DropdownVisible = msg.Visible
		if msg.Visible {
			for i, st := range movie.SortTypes {
				if st == m.SortType {
					m.SortList.Select(i)
				}
			}
		}
		return m, waitForDropdown(m.Dropdown)

	case closedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.State.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.MovieList, cmd = m.MovieList.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.MovieList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.MovieList, cmd = m.MovieList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		m.Screen.SetShowDropdown(!m.DropdownVisible)
		return m, nil

	case "r":
		m.Screen.RetryLoadMovies()
		return m, nil

	case "esc":
		if m.DropdownVisible {
			m.Screen.SetShowDropdown(false)
			return m, nil
		}

	case "enter":
		if m.DropdownVisible {
			if item, ok := m.SortList.SelectedItem().(SortItem); ok {
				m.Screen.SetSelectedSortType(item.SortType)
			}
			m.Screen.SetShowDropdown(false)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.DropdownVisible {
		m.SortList, cmd = m.SortList.Update(msg)
	} else {
		m.MovieList, cmd = m.MovieList.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n   %s  %s\n\n", TitleStyle.Render(m.SortType.Label()), InfoStyle.Render("[s] sort  [r] retry  [q] quit")))

	if m.DropdownVisible {
		b.WriteString(DropdownStyle.Render(m.SortList.View()))
		b.WriteString("\n\n")
	}

	switch {
	case m.State.IsLoading:
		b.WriteString(fmt.Sprintf("   %s Loading movies...\n", m.Spinner.View()))
	case m.State.IsError:
		b.WriteString(fmt.Sprintf("   %s\n\n   Press r to retry\n", ErrorStyle.Render("Could not load movies.")))
	case len(m.State.Movies) == 0:
		b.WriteString("   No movies found.\n")
	default:
		b.WriteString(m.MovieList.View())
	}
	return b.String()
}
