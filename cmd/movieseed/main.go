package main

import (
	"archive/zip"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"moviebrowser/moviesource"
	"moviebrowser/pkg/config"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		dir     string
		zipURL  string
		limit   int
		window  time.Duration
		batchSz int
	)

	flag.StringVar(&dir, "dir", "", "Directory holding movies.csv and ratings.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of movies to import (0 = all)")
	flag.DurationVar(&window, "popularity-window", 2*365*24*time.Hour, "Ratings newer than this, relative to the newest rating, count towards popularity")
	flag.IntVar(&batchSz, "batch", 500, "Movies written per batch")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	src, err := moviesource.Open(ctx, cfg)
	if err != nil {
		slog.Error("cannot open movie source", "source", cfg.MovieSource, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	store, ok := src.Store()
	if !ok {
		slog.Error("movie source is read only", "source", cfg.MovieSource)
		os.Exit(1)
	}

	cleanup := func() {}
	if dir == "" {
		d, c, err := downloadAndExtract(zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		dir = d
		cleanup = c
	}
	defer cleanup()

	movies, err := loadMovieLens(filepath.Join(dir, "movies.csv"), filepath.Join(dir, "ratings.csv"), window)
	if err != nil {
		slog.Error("parse dataset failed", "error", err)
		os.Exit(1)
	}
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}

	for start := 0; start < len(movies); start += batchSz {
		end := min(start+batchSz, len(movies))
		if err := store.UpsertMovies(ctx, movies[start:end]); err != nil {
			slog.Error("import failed", "error", err, "imported", start)
			os.Exit(1)
		}
	}

	slog.Info("import completed", "rows", len(movies), "source", cfg.MovieSource)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	for _, name := range []string{"movies.csv", "ratings.csv"} {
		if err := extractFile(zipPath, name, tmpDir); err != nil {
			cleanup()
			return "", func() {}, err
		}
	}

	return tmpDir, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractFile(zipPath, name, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, file := range r.File {
		if filepath.Base(file.Name) != name {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return err
		}
		defer src.Close()

		out, err := os.Create(filepath.Join(destDir, name))
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()
	}

	return fmt.Errorf("%s not found in zip", name)
}
