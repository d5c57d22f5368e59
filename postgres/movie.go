package postgres

import (
	"context"
	"fmt"
	"moviebrowser/movie"

	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          uint    `gorm:"primaryKey"`
	MovieID     int     `gorm:"column:movie_id;not null;uniqueIndex"`
	Title       string  `gorm:"not null"`
	Overview    string  `gorm:"not null;default:''"`
	PosterPath  string  `gorm:"not null;default:''"`
	ReleaseDate string  `gorm:"not null;default:''"`
	VoteAverage float64 `gorm:"not null;default:0"`
	VoteCount   int     `gorm:"not null;default:0"`
	Popularity  float64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func (m MovieModel) toMovie() movie.Movie {
	return movie.Movie{
		ID:          m.MovieID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Popularity:  m.Popularity,
	}
}

// MovieRepository implements movie.Repository interface.
type MovieRepository struct {
	db           *gorm.DB
	limit        int
	minVoteCount int
}

// NewMovieRepository creates a new movie repository. Top rated lists only
// include movies with at least minVoteCount votes.
func NewMovieRepository(db *gorm.DB, limit, minVoteCount int) *MovieRepository {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if minVoteCount < 0 {
		minVoteCount = 0
	}
	return &MovieRepository{db: db, limit: limit, minVoteCount: minVoteCount}
}

func (r *MovieRepository) MostPopularMovies(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	err := r.db.WithContext(ctx).
		Order("popularity DESC").
		Order("movie_id").
		Limit(r.limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: most popular movies: %w", err)
	}
	return toMovies(models), nil
}

func (r *MovieRepository) TopRatedMovies(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	err := r.db.WithContext(ctx).
		Where("vote_count >= ?", r.minVoteCount).
		Order("vote_average DESC").
		Order("vote_count DESC").
		Order("movie_id").
		Limit(r.limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: top rated movies: %w", err)
	}
	return toMovies(models), nil
}

// UpsertMovies inserts movies or updates them by movie_id.
func (r *MovieRepository) UpsertMovies(ctx context.Context, movies []movie.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	const stmt = `
INSERT INTO movies (movie_id, title, overview, poster_path, release_date, vote_average, vote_count, popularity)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (movie_id) DO UPDATE SET
	title = EXCLUDED.title,
	overview = EXCLUDED.overview,
	poster_path = EXCLUDED.poster_path,
	release_date = EXCLUDED.release_date,
	vote_average = EXCLUDED.vote_average,
	vote_count = EXCLUDED.vote_count,
	popularity = EXCLUDED.popularity
`

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range movies {
			err := tx.Exec(stmt, m.ID, m.Title, m.Overview, m.PosterPath, m.ReleaseDate,
				m.VoteAverage, m.VoteCount, m.Popularity).Error
			if err != nil {
				return fmt.Errorf("postgres: upsert movie %d: %w", m.ID, err)
			}
		}
		return nil
	})
}

func toMovies(models []MovieModel) []movie.Movie {
	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies
}
