package httpserver

import "moviebrowser/movie"

type SetSortTypeRequest struct {
	SortType string `json:"sortType" validate:"required,sorttype"`
}

type SetDropdownRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type SortTypeResponse struct {
	SortType movie.SortType `json:"sortType"`
}

type DropdownResponse struct {
	Visible bool `json:"visible"`
}
