// Package moviesource opens the movie repository selected by MOVIE_SOURCE.
package moviesource

import (
	"context"
	"fmt"
	"moviebrowser/dynamodb"
	"moviebrowser/movie"
	"moviebrowser/pkg/config"
	"moviebrowser/postgres"
	"moviebrowser/sqlite"
	"moviebrowser/tmdb"
	"strconv"
)

// Store is a repository that can also be written to by the importer.
type Store interface {
	movie.Repository
	UpsertMovies(ctx context.Context, movies []movie.Movie) error
}

// Source is an opened repository and the function that releases it.
type Source struct {
	Repository movie.Repository
	Close      func() error
}

// Store returns the repository as a writable store. TMDB is read only.
func (s *Source) Store() (Store, bool) {
	store, ok := s.Repository.(Store)
	return store, ok
}

// Open connects to the configured movie source.
func Open(ctx context.Context, cfg *config.Config) (*Source, error) {
	noop := func() error { return nil }

	switch cfg.MovieSource {
	case config.SourcePostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("moviesource: open postgres: %w", err)
		}
		return &Source{
			Repository: postgres.NewMovieRepository(db, cfg.MovieLimit, cfg.MinVoteCount),
			Close:      func() error { return postgres.Close(db) },
		}, nil

	case config.SourceSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("moviesource: %w", err)
		}
		return &Source{
			Repository: sqlite.NewMovieRepository(db, cfg.MovieLimit, cfg.MinVoteCount),
			Close:      db.Close,
		}, nil

	case config.SourceDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, fmt.Errorf("moviesource: %w", err)
		}
		return &Source{
			Repository: dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable, cfg.MovieLimit, cfg.MinVoteCount),
			Close:      noop,
		}, nil

	case config.SourceTMDB:
		client, err := tmdb.NewClient(tmdb.Options{
			BaseURL:  cfg.TMDB.BaseURL,
			APIKey:   cfg.TMDB.APIKey,
			Language: cfg.TMDB.Language,
			Timeout:  cfg.TMDB.Timeout,
			Limit:    cfg.MovieLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("moviesource: %w", err)
		}
		return &Source{Repository: client, Close: noop}, nil
	}

	return nil, fmt.Errorf("moviesource: unknown movie source %q", cfg.MovieSource)
}
