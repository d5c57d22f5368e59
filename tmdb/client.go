// Package tmdb reads movie lists from The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"moviebrowser/errs"
	"moviebrowser/movie"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
)

type Options struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
	Limit    int

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
}

type movieListResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Client implements movie.Repository against TMDB. Lists come back in the
// order TMDB ranks them.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	limit    int
	http     *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errs.Errorf(errs.EINVALID, "tmdb: api key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("tmdb: invalid base url: %w", err)
	}

	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:  baseURL,
		apiKey:   opts.APIKey,
		language: language,
		limit:    opts.Limit,
		http:     httpClient,
	}, nil
}

func (c *Client) MostPopularMovies(ctx context.Context) ([]movie.Movie, error) {
	return c.list(ctx, "/movie/popular")
}

func (c *Client) TopRatedMovies(ctx context.Context) ([]movie.Movie, error) {
	return c.list(ctx, "/movie/top_rated")
}

func (c *Client) list(ctx context.Context, path string) ([]movie.Movie, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	query.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(path, resp)
	}

	var body movieListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("tmdb: %s: decode response: %w", path, err)
	}

	movies := make([]movie.Movie, 0, len(body.Results))
	for _, r := range body.Results {
		if c.limit > 0 && len(movies) == c.limit {
			break
		}
		movies = append(movies, movie.Movie{
			ID:          r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			VoteAverage: r.VoteAverage,
			VoteCount:   r.VoteCount,
			Popularity:  r.Popularity,
		})
	}
	return movies, nil
}

func statusError(path string, resp *http.Response) error {
	message := resp.Status
	var body errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &body) == nil && body.StatusMessage != "" {
		message = body.StatusMessage
	}

	code := errs.EUNAVAILABLE
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = errs.EUNAUTHORIZED
	case http.StatusNotFound:
		code = errs.ENOTFOUND
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = errs.EINVALID
	}
	return errs.Errorf(code, "tmdb: %s: %s", path, message)
}
