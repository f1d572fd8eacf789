package dto

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPage[T any](data []T, total, page, pageSize int) *Page[T] {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &Page[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
