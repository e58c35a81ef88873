package entity

import "time"

// Uploader is the denormalized owner embedded in movie responses.
type Uploader struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre,omitempty"`
	ReleaseYear int       `json:"release_year,omitempty"`
	Rating      float64   `json:"rating"`
	PosterURL   string    `json:"poster_url,omitempty"`
	UploadedBy  Uploader  `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListQuery carries the listing parameters after boundary validation.
// OwnerID restricts results to one uploader (the "my movies" view).
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	OwnerID   string
}

type MoviePage struct {
	Movies      []*Movie `json:"movies"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
	TotalMovies int64    `json:"total_movies"`
}
