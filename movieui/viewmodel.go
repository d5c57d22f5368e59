package movieui

import (
	"context"
	"log/slog"
	"moviebrowser/movie"
	"sync"
)

// ErrorHandler receives fetch failures. The UI state only records that a
// fetch failed, so this is the one place the error itself is visible.
type ErrorHandler func(ctx context.Context, sortType movie.SortType, err error)

type Option func(vm *ViewModel)

func WithLogger(l *slog.Logger) Option {
	return func(vm *ViewModel) {
		vm.logger = l
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(vm *ViewModel) {
		vm.onError = h
	}
}

func WithMapper(m Mapper) Option {
	return func(vm *ViewModel) {
		vm.mapper = m
	}
}

// WithInitialSortType overrides the sort type used by the first fetch.
func WithInitialSortType(s movie.SortType) Option {
	return func(vm *ViewModel) {
		vm.initialSort = s
	}
}

// ViewModel holds the state of the movie list screen. All fetches run on
// goroutines bound to the view model's context and stop on Close.
//
// When fetches overlap, only the most recently started one may publish;
// older completions are discarded.
type ViewModel struct {
	mostPopular movie.Fetcher
	topRated    movie.Fetcher
	mapper      Mapper
	logger      *slog.Logger
	onError     ErrorHandler
	initialSort movie.SortType

	uiState  *StateFlow[MovieMainUIState]
	sortType *StateFlow[movie.SortType]
	dropdown *EventQueue[bool]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	generation uint64
	closed     bool
}

// NewViewModel creates the view model and starts loading the first list.
func NewViewModel(ctx context.Context, mostPopular, topRated movie.Fetcher, opts ...Option) *ViewModel {
	vm := &ViewModel{
		mostPopular: mostPopular,
		topRated:    topRated,
		mapper:      Mapper{ImageBaseURL: DefaultImageBaseURL},
		logger:      slog.Default(),
		initialSort: movie.MostPopular,
	}
	for _, opt := range opts {
		opt(vm)
	}

	vm.ctx, vm.cancel = context.WithCancel(ctx)
	vm.uiState = NewStateFlow(InitialUIState())
	vm.sortType = NewStateFlow(vm.initialSort)
	vm.dropdown = newEventQueue[bool](vm.ctx, &vm.wg)

	vm.mu.Lock()
	vm.fetchMoviesLocked()
	vm.mu.Unlock()

	return vm
}

func (vm *ViewModel) UIState() *StateFlow[MovieMainUIState] {
	return vm.uiState
}

func (vm *ViewModel) SortType() *StateFlow[movie.SortType] {
	return vm.sortType
}

// ShowDropdown delivers each dropdown visibility request once.
func (vm *ViewModel) ShowDropdown() <-chan bool {
	return vm.dropdown.Receive()
}

func (vm *ViewModel) RetryLoadMovies() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.fetchMoviesLocked()
}

func (vm *ViewModel) SetSelectedSortType(s movie.SortType) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed || vm.sortType.Value() == s {
		return
	}
	vm.sortType.emit(s)
	vm.fetchMoviesLocked()
}

func (vm *ViewModel) SetShowDropdown(visible bool) {
	vm.dropdown.Send(visible)
}

// Close cancels in-flight fetches and waits for them to return. No state
// is published after Close.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	vm.closed = true
	vm.cancel()
	vm.mu.Unlock()

	vm.wg.Wait()
	vm.uiState.close()
	vm.sortType.close()
}

func (vm *ViewModel) fetchMoviesLocked() {
	if vm.closed {
		return
	}

	vm.generation++
	gen := vm.generation
	sortType := vm.sortType.Value()

	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()
		vm.fetchMovies(gen, sortType)
	}()
}

func (vm *ViewModel) fetchMovies(gen uint64, sortType movie.SortType) {
	logger := vm.logger.With("sort_type", sortType.String(), "generation", gen)
	logger.Debug("fetching movies")

	movies, err := vm.fetcherFor(sortType).Fetch(vm.ctx)

	vm.mu.Lock()
	if vm.ctx.Err() != nil {
		vm.mu.Unlock()
		return
	}
	if latest := vm.generation; gen != latest {
		vm.mu.Unlock()
		logger.Debug("discarding stale result", "latest_generation", latest)
		return
	}
	if err != nil {
		vm.uiState.emit(errorUIState())
		vm.mu.Unlock()

		logger.Warn("fetch movies failed", "error", err)
		if vm.onError != nil {
			vm.onError(vm.ctx, sortType, err)
		}
		return
	}
	vm.uiState.emit(successUIState(vm.mapper.ToUiRecordList(movies)))
	vm.mu.Unlock()

	logger.Info("movies loaded", "count", len(movies))
}

func (vm *ViewModel) fetcherFor(s movie.SortType) movie.Fetcher {
	if s == movie.TopRated {
		return vm.topRated
	}
	return vm.mostPopular
}
