package movie

import (
	"moviebrowser/errs"
	"strings"
)

var ErrInvalidSortType = errs.Errorf(errs.EINVALID, "movie: invalid sort type")

// Movie is a single movie as supplied by a repository.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
}

// SortType selects which list of movies is fetched.
type SortType int

const (
	MostPopular SortType = iota
	TopRated
)

// SortTypes lists every sort type in display order.
var SortTypes = []SortType{MostPopular, TopRated}

func (s SortType) String() string {
	switch s {
	case MostPopular:
		return "most_popular"
	case TopRated:
		return "top_rated"
	default:
		return "unknown"
	}
}

// Label is the human readable name of the sort type.
func (s SortType) Label() string {
	switch s {
	case MostPopular:
		return "Most popular"
	case TopRated:
		return "Top rated"
	default:
		return "Unknown"
	}
}

func (s SortType) MarshalText() ([]byte, error) {
	if s != MostPopular && s != TopRated {
		return nil, ErrInvalidSortType
	}
	return []byte(s.String()), nil
}

func (s *SortType) UnmarshalText(text []byte) error {
	parsed, err := ParseSortType(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSortType parses the text form of a sort type.
func ParseSortType(raw string) (SortType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "most_popular":
		return MostPopular, nil
	case "top_rated":
		return TopRated, nil
	default:
		return MostPopular, ErrInvalidSortType
	}
}
