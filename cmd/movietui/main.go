package main

import (
	"context"
	"fmt"
	"log/slog"
	"moviebrowser/movie"
	"moviebrowser/moviesource"
	"moviebrowser/movieui"
	"moviebrowser/pkg/config"
	"moviebrowser/tui"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := tea.LogToFile("movietui.log", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := moviesource.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening movie source: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	vm := movieui.NewViewModel(ctx,
		movie.NewGetMostPopularMoviesUsecase(src.Repository),
		movie.NewGetTopRatedMoviesUsecase(src.Repository),
		movieui.WithLogger(logger),
		movieui.WithMapper(movieui.Mapper{ImageBaseURL: cfg.ImageBaseURL}),
		movieui.WithInitialSortType(cfg.DefaultSort),
	)
	defer vm.Close()

	m := tui.NewModel(ctx, vm)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}
