package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"moviebrowser/movie"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var titleYear = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

type ratingStats struct {
	sum    float64
	count  int
	recent int
}

// loadMovieLens joins movies.csv with the aggregated ratings.csv. MovieLens
// ratings are 0.5-5 stars and are doubled onto a 0-10 scale. Popularity is
// the number of ratings within window of the newest rating.
func loadMovieLens(moviesPath, ratingsPath string, window time.Duration) ([]movie.Movie, error) {
	stats, err := readRatings(ratingsPath, window)
	if err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}

	file, err := os.Open(moviesPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	movies, err := parseMovies(file, stats)
	if err != nil {
		return nil, fmt.Errorf("movies: %w", err)
	}
	return movies, nil
}

func readRatings(path string, window time.Duration) (map[int]*ratingStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseRatings(file, window)
}

type rating struct {
	movieID   int
	value     float64
	timestamp int64
}

func parseRatings(r io.Reader, window time.Duration) (map[int]*ratingStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idx, err := headerIndex(reader, "movieId", "rating", "timestamp")
	if err != nil {
		return nil, err
	}

	var (
		ratings []rating
		newest  int64
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !hasColumns(record, idx) {
			continue
		}
		movieID, err := strconv.Atoi(strings.TrimSpace(record[idx[0]]))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[idx[1]]), 64)
		if err != nil {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(record[idx[2]]), 10, 64)
		if err != nil {
			continue
		}
		ratings = append(ratings, rating{movieID: movieID, value: value, timestamp: ts})
		newest = max(newest, ts)
	}

	cutoff := newest - int64(window/time.Second)
	stats := make(map[int]*ratingStats)
	for _, rt := range ratings {
		s, ok := stats[rt.movieID]
		if !ok {
			s = &ratingStats{}
			stats[rt.movieID] = s
		}
		s.sum += rt.value
		s.count++
		if rt.timestamp >= cutoff {
			s.recent++
		}
	}
	return stats, nil
}

func parseMovies(r io.Reader, stats map[int]*ratingStats) ([]movie.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idx, err := headerIndex(reader, "movieId", "title", "genres")
	if err != nil {
		return nil, err
	}

	var movies []movie.Movie
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !hasColumns(record, idx) {
			continue
		}
		movieID, err := strconv.Atoi(strings.TrimSpace(record[idx[0]]))
		if err != nil {
			continue
		}

		title, year := splitTitle(strings.TrimSpace(record[idx[1]]))
		m := movie.Movie{
			ID:          movieID,
			Title:       title,
			Overview:    formatGenres(record[idx[2]]),
			ReleaseDate: year,
		}
		if s, ok := stats[movieID]; ok && s.count > 0 {
			m.VoteAverage = math.Round(s.sum/float64(s.count)*2*100) / 100
			m.VoteCount = s.count
			m.Popularity = float64(s.recent)
		}
		movies = append(movies, m)
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Popularity > movies[j].Popularity
	})
	return movies, nil
}

func headerIndex(reader *csv.Reader, columns ...string) ([]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = -1
		for j, name := range header {
			if strings.TrimSpace(name) == col {
				idx[i] = j
			}
		}
		if idx[i] == -1 {
			return nil, fmt.Errorf("missing column %q in csv header", col)
		}
	}
	return idx, nil
}

func hasColumns(record []string, idx []int) bool {
	for _, i := range idx {
		if i >= len(record) {
			return false
		}
	}
	return true
}

// splitTitle turns "Heat (1995)" into "Heat" and "1995".
func splitTitle(raw string) (string, string) {
	if m := titleYear.FindStringSubmatch(raw); m != nil {
		return m[1], m[2]
	}
	return raw, ""
}

func formatGenres(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "(no genres listed)" {
		return ""
	}
	return strings.Join(strings.Split(raw, "|"), ", ")
}
