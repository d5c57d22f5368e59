package main

import (
	"context"
	"log/slog"
	"moviebrowser/httpserver"
	"moviebrowser/movie"
	"moviebrowser/moviesource"
	"moviebrowser/movieui"
	"moviebrowser/pkg/config"
	"moviebrowser/pkg/sentry"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := moviesource.Open(ctx, cfg)
	if err != nil {
		slog.Error("Cannot open movie source", "source", cfg.MovieSource, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	vm := movieui.NewViewModel(ctx,
		movie.NewGetMostPopularMoviesUsecase(src.Repository),
		movie.NewGetTopRatedMoviesUsecase(src.Repository),
		movieui.WithLogger(logger.With("component", "movieui")),
		movieui.WithMapper(movieui.Mapper{ImageBaseURL: cfg.ImageBaseURL}),
		movieui.WithInitialSortType(cfg.DefaultSort),
		movieui.WithErrorHandler(reportFetchError),
	)
	defer vm.Close()

	server := httpserver.Default(cfg)
	server.Logger = logger
	server.MovieScreen = vm

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server started!", "addr", server.Addr, "source", cfg.MovieSource)
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func reportFetchError(_ context.Context, sortType movie.SortType, err error) {
	sentry.WithTags(map[string]string{"sort_type": sortType.String()}).Error(err)
}
