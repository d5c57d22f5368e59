package config

import (
	"fmt"
	"moviebrowser/movie"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Movie sources selectable with MOVIE_SOURCE.
const (
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceDynamoDB = "dynamodb"
	SourceTMDB     = "tmdb"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	MovieSource  string         `envconfig:"MOVIE_SOURCE" default:"postgres"`
	DefaultSort  movie.SortType `envconfig:"DEFAULT_SORT" default:"most_popular"`
	DropdownWait time.Duration  `envconfig:"DROPDOWN_WAIT" default:"25s"`
	ImageBaseURL string         `envconfig:"IMAGE_BASE_URL" default:"https://image.tmdb.org/t/p/w500"`
	MovieLimit   int            `envconfig:"MOVIE_LIMIT" default:"20"`
	MinVoteCount int            `envconfig:"MIN_VOTE_COUNT" default:"50"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"movies.db"`
	}
	DynamoDB struct {
		Region       string `envconfig:"DDB_REGION"`
		Endpoint     string `envconfig:"DDB_ENDPOINT"`
		AccessKey    string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey    string `envconfig:"DDB_SECRET_KEY"`
		SessionToken string `envconfig:"DDB_SESSION_TOKEN"`
		MoviesTable  string `envconfig:"DDB_MOVIES_TABLE" default:"movies"`
	}
	TMDB struct {
		BaseURL  string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		APIKey   string        `envconfig:"TMDB_API_KEY"`
		Language string        `envconfig:"TMDB_LANGUAGE" default:"en-US"`
		Timeout  time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.MovieSource {
	case SourcePostgres, SourceSQLite, SourceDynamoDB, SourceTMDB:
	default:
		return nil, fmt.Errorf("load config error: unknown movie source %q", cfg.MovieSource)
	}

	return cfg, nil
}
