// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviebrowser/movie"
	"moviebrowser/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":        "test",
			"PORT":           "9090",
			"SENTRY_DSN":     "https://test@sentry.io/123",
			"ALLOW_ORIGINS":  "*",
			"MOVIE_SOURCE":   "tmdb",
			"DEFAULT_SORT":   "top_rated",
			"DROPDOWN_WAIT":  "5s",
			"DB_NAME":        "moviesdb",
			"DB_HOST":        "localhost",
			"DB_PORT":        "5432",
			"DB_USER":        "movies",
			"DB_PASS":        "secret",
			"ENABLE_SSL":     "true",
			"TMDB_API_KEY":   "abc123",
			"TMDB_TIMEOUT":   "3s",
			"MIN_VOTE_COUNT": "100",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, config.SourceTMDB, cfg.MovieSource)
		assert.Equal(t, movie.TopRated, cfg.DefaultSort)
		assert.Equal(t, 5*time.Second, cfg.DropdownWait)
		assert.Equal(t, "moviesdb", cfg.DB.Name)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "abc123", cfg.TMDB.APIKey)
		assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, 100, cfg.MinVoteCount)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, config.SourcePostgres, cfg.MovieSource)
		assert.Equal(t, movie.MostPopular, cfg.DefaultSort)
		assert.Equal(t, 20, cfg.MovieLimit)
		assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
		assert.Equal(t, "movies", cfg.DynamoDB.MoviesTable)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid sort type", func(t *testing.T) {
		t.Setenv("DEFAULT_SORT", "newest")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("handles unknown movie source", func(t *testing.T) {
		t.Setenv("MOVIE_SOURCE", "mongodb")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unknown movie source")
	})
}
