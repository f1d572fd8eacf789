package dto

import "reviewhub/internal/api/models"

// TitleWriteDTO is the write shape: category and genres are referenced by
// slug strings, never by id or nested object.
type TitleWriteDTO struct {
	Name        string   `json:"name" binding:"required"`
	Year        *int     `json:"year" binding:"omitempty,min=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateTitleDTO is the partial write shape; nil means unchanged, and a nil
// Genre slice leaves the genre set alone while an empty one clears it.
type UpdateTitleDTO struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Year        *int     `json:"year" binding:"omitempty,min=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleResponse is the read shape: nested {name, slug} objects plus the
// computed rating (null when the title has no reviews).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year,omitempty"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	return resp
}
