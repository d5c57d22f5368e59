package dynamodb

import (
	"context"
	"fmt"
	"moviebrowser/movie"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ScanAPI is the subset of the DynamoDB client used by MovieRepository.
type ScanAPI interface {
	dynamodb.ScanAPIClient
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// batchWriteLimit is the DynamoDB maximum number of items per BatchWriteItem.
const batchWriteLimit = 25

type movieItem struct {
	MovieID     int     `dynamodbav:"movie_id"`
	Title       string  `dynamodbav:"title"`
	Overview    string  `dynamodbav:"overview"`
	PosterPath  string  `dynamodbav:"poster_path"`
	ReleaseDate string  `dynamodbav:"release_date"`
	VoteAverage float64 `dynamodbav:"vote_average"`
	VoteCount   int     `dynamodbav:"vote_count"`
	Popularity  float64 `dynamodbav:"popularity"`
}

// MovieRepository reads the whole movies table and orders it in memory.
// It suits small catalogues; larger ones belong in Postgres.
type MovieRepository struct {
	client       ScanAPI
	table        string
	limit        int
	minVoteCount int
}

func NewMovieRepository(client ScanAPI, table string, limit, minVoteCount int) *MovieRepository {
	if limit <= 0 {
		limit = 20
	}
	return &MovieRepository{
		client:       client,
		table:        table,
		limit:        limit,
		minVoteCount: minVoteCount,
	}
}

func (r *MovieRepository) MostPopularMovies(ctx context.Context) ([]movie.Movie, error) {
	movies, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	return mostPopular(movies, r.limit), nil
}

func (r *MovieRepository) TopRatedMovies(ctx context.Context) ([]movie.Movie, error) {
	movies, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	return topRated(movies, r.minVoteCount, r.limit), nil
}

// UpsertMovies writes movies in batches, replacing items with the same key.
func (r *MovieRepository) UpsertMovies(ctx context.Context, movies []movie.Movie) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	for start := 0; start < len(movies); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(movies) {
			end = len(movies)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, m := range movies[start:end] {
			av, err := attributevalue.MarshalMap(toItem(m))
			if err != nil {
				return fmt.Errorf("dynamodb: marshal movie: %w", err)
			}
			requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
		}

		pending := map[string][]types.WriteRequest{r.table: requests}
		for len(pending) > 0 {
			out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("dynamodb: put movies: %w", err)
			}
			pending = out.UnprocessedItems
		}
	}

	return nil
}

func (r *MovieRepository) scan(ctx context.Context) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	var movies []movie.Movie
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.table,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var items []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		for _, item := range items {
			movies = append(movies, item.toMovie())
		}
	}

	return movies, nil
}

func mostPopular(movies []movie.Movie, limit int) []movie.Movie {
	sorted := append([]movie.Movie{}, movies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Popularity != sorted[j].Popularity {
			return sorted[i].Popularity > sorted[j].Popularity
		}
		return sorted[i].ID < sorted[j].ID
	})
	return truncate(sorted, limit)
}

func topRated(movies []movie.Movie, minVoteCount, limit int) []movie.Movie {
	sorted := make([]movie.Movie, 0, len(movies))
	for _, m := range movies {
		if m.VoteCount >= minVoteCount {
			sorted = append(sorted, m)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.VoteAverage != b.VoteAverage {
			return a.VoteAverage > b.VoteAverage
		}
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		return a.ID < b.ID
	})
	return truncate(sorted, limit)
}

func truncate(movies []movie.Movie, limit int) []movie.Movie {
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

func toItem(m movie.Movie) movieItem {
	return movieItem{
		MovieID:     m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Popularity:  m.Popularity,
	}
}

func (item movieItem) toMovie() movie.Movie {
	return movie.Movie{
		ID:          item.MovieID,
		Title:       item.Title,
		Overview:    item.Overview,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.ReleaseDate,
		VoteAverage: item.VoteAverage,
		VoteCount:   item.VoteCount,
		Popularity:  item.Popularity,
	}
}
