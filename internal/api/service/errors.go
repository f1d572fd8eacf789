package service

import "errors"

// Sentinel errors shared across services; handlers match with errors.Is and
// translate to HTTP statuses.
var (
	ErrForbidden = errors.New("you don't have permission to perform this action")

	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrReviewExists = errors.New("review already exists")

	ErrEmailInUse = errors.New("email already in use")
	ErrNameInUse  = errors.New("username already in use")
	ErrSlugInUse  = errors.New("name or slug already in use")
	ErrBadSlug    = errors.New("slug must contain only letters, digits, hyphens and underscores")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidLoginCode   = errors.New("invalid or expired login code")
)
