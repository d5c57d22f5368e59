package movieui

import (
	"moviebrowser/movie"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

// MovieUiRecord is a movie projected for display.
type MovieUiRecord struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterURL   string `json:"posterUrl"`
	ReleaseYear string `json:"releaseYear"`
	Rating      string `json:"rating"`
	Votes       string `json:"votes"`
}

// MovieMainUIState is replaced as a whole on every fetch completion.
type MovieMainUIState struct {
	Movies    []MovieUiRecord `json:"movies"`
	IsLoading bool            `json:"isLoading"`
	IsError   bool            `json:"isError"`
	IsSuccess bool            `json:"isSuccess"`
}

// InitialUIState is the state published before the first fetch resolves.
func InitialUIState() MovieMainUIState {
	return MovieMainUIState{Movies: []MovieUiRecord{}, IsLoading: true}
}

func successUIState(movies []MovieUiRecord) MovieMainUIState {
	return MovieMainUIState{Movies: movies, IsSuccess: true}
}

func errorUIState() MovieMainUIState {
	return MovieMainUIState{Movies: []MovieUiRecord{}, IsError: true}
}

// Mapper converts movies into display records.
type Mapper struct {
	ImageBaseURL string
}

func (m Mapper) ToUiRecord(mv movie.Movie) MovieUiRecord {
	return MovieUiRecord{
		ID:          mv.ID,
		Title:       mv.Title,
		Overview:    mv.Overview,
		PosterURL:   m.posterURL(mv.PosterPath),
		ReleaseYear: releaseYear(mv.ReleaseDate),
		Rating:      strconv.FormatFloat(mv.VoteAverage, 'f', 1, 64),
		Votes:       humanize.Comma(int64(mv.VoteCount)),
	}
}

func (m Mapper) ToUiRecordList(movies []movie.Movie) []MovieUiRecord {
	records := make([]MovieUiRecord, len(movies))
	for i, mv := range movies {
		records[i] = m.ToUiRecord(mv)
	}
	return records
}

// ToUiRecordList maps movies with the default image base URL.
func ToUiRecordList(movies []movie.Movie) []MovieUiRecord {
	return Mapper{ImageBaseURL: DefaultImageBaseURL}.ToUiRecordList(movies)
}

func (m Mapper) posterURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(m.ImageBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func releaseYear(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}
