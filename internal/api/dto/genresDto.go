package dto

import "reviewhub/internal/api/models"

// CreateGenreDTO for creating a genre
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=200"`
}

// GenreResponse is the {name, slug} shape embedded in title reads
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
