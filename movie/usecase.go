package movie

import "context"

type Repository interface {
	MostPopularMovies(ctx context.Context) ([]Movie, error)
	TopRatedMovies(ctx context.Context) ([]Movie, error)
}

// Fetcher loads one ordered list of movies.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Movie, error)
}

type GetMostPopularMoviesUsecase struct {
	r Repository
}

func NewGetMostPopularMoviesUsecase(r Repository) *GetMostPopularMoviesUsecase {
	return &GetMostPopularMoviesUsecase{r: r}
}

func (uc *GetMostPopularMoviesUsecase) Fetch(ctx context.Context) ([]Movie, error) {
	return uc.r.MostPopularMovies(ctx)
}

type GetTopRatedMoviesUsecase struct {
	r Repository
}

func NewGetTopRatedMoviesUsecase(r Repository) *GetTopRatedMoviesUsecase {
	return &GetTopRatedMoviesUsecase{r: r}
}

func (uc *GetTopRatedMoviesUsecase) Fetch(ctx context.Context) ([]Movie, error) {
	return uc.r.TopRatedMovies(ctx)
}
