package dto

import "reviewhub/internal/api/models"

// CreateCategoryDTO for creating a category
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=200"`
}

// CategoryResponse is the {name, slug} shape embedded in title reads
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
