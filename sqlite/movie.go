package sqlite

import (
	"context"
	"fmt"
	"moviebrowser/movie"
)

const movieColumns = "movie_id, title, overview, poster_path, release_date, vote_average, vote_count, popularity"

// MovieRepository implements movie.Repository on top of DB.
type MovieRepository struct {
	db           *DB
	limit        int
	minVoteCount int
}

func NewMovieRepository(db *DB, limit, minVoteCount int) *MovieRepository {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if minVoteCount < 0 {
		minVoteCount = 0
	}
	return &MovieRepository{db: db, limit: limit, minVoteCount: minVoteCount}
}

func (r *MovieRepository) MostPopularMovies(ctx context.Context) ([]movie.Movie, error) {
	movies, err := r.query(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY popularity DESC, movie_id LIMIT ?",
		r.limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: most popular movies: %w", err)
	}
	return movies, nil
}

func (r *MovieRepository) TopRatedMovies(ctx context.Context) ([]movie.Movie, error) {
	movies, err := r.query(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE vote_count >= ? "+
			"ORDER BY vote_average DESC, vote_count DESC, movie_id LIMIT ?",
		r.minVoteCount, r.limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: top rated movies: %w", err)
	}
	return movies, nil
}

// UpsertMovies inserts movies or replaces them by movie_id in a single
// transaction.
func (r *MovieRepository) UpsertMovies(ctx context.Context, movies []movie.Movie) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO movies (`+movieColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(movie_id) DO UPDATE SET
		title = excluded.title,
		overview = excluded.overview,
		poster_path = excluded.poster_path,
		release_date = excluded.release_date,
		vote_average = excluded.vote_average,
		vote_count = excluded.vote_count,
		popularity = excluded.popularity`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movies {
		_, err := stmt.ExecContext(ctx, m.ID, m.Title, m.Overview, m.PosterPath, m.ReleaseDate,
			m.VoteAverage, m.VoteCount, m.Popularity)
		if err != nil {
			return fmt.Errorf("sqlite: upsert movie %d: %w", m.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (r *MovieRepository) query(ctx context.Context, query string, args ...interface{}) ([]movie.Movie, error) {
	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []movie.Movie{}
	for rows.Next() {
		var m movie.Movie
		err := rows.Scan(&m.ID, &m.Title, &m.Overview, &m.PosterPath, &m.ReleaseDate,
			&m.VoteAverage, &m.VoteCount, &m.Popularity)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
