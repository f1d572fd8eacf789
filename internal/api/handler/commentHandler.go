package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc    service.CommentService
	limits PageLimits
}

func NewCommentHandler(svc service.CommentService, limits PageLimits) *CommentHandler {
	return &CommentHandler{svc: svc, limits: limits}
}

// RegisterRoutes nests comments under /titles/:title_id/reviews/:review_id.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comments := rg.Group("/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)

		comments.POST("", middleware.RequireAuthenticated(), h.Create)
		comments.PATCH("/:comment_id", middleware.RequireAuthenticated(), h.Update)
		comments.DELETE("/:comment_id", middleware.RequireAuthenticated(), h.Delete)
	}
}

func commentIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return id, true
}

// List returns the comments under one review of one title
// GET /api/v1/titles/:title_id/reviews/:review_id/comments?page=1&page_size=20
func (h *CommentHandler) List(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c, h.limits)

	comments, err := h.svc.List(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Get retrieves a single comment scoped to its (title, review) pair
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Create creates a comment under a review; author comes from the identity
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update rewrites a comment's text; author, moderator or admin only
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), middleware.Identity(c), titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment; author, moderator or admin only
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.Identity(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
