package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// PageLimits carries the configured pagination bounds into list handlers.
type PageLimits struct {
	Default int
	Max     int
}

func parsePagination(c *gin.Context, limits PageLimits) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(limits.Default)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > limits.Max {
		pageSize = limits.Default
	}
	return page, pageSize
}

// respondError translates service sentinel errors into HTTP statuses.
// Anything unrecognized is an internal error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrSlugInUse),
		errors.Is(err, service.ErrBadSlug),
		errors.Is(err, service.ErrInvalidLoginCode):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		status = http.StatusUnauthorized
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
