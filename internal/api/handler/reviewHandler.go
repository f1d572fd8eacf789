package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc    service.ReviewService
	limits PageLimits
}

func NewReviewHandler(svc service.ReviewService, limits PageLimits) *ReviewHandler {
	return &ReviewHandler{svc: svc, limits: limits}
}

// RegisterRoutes nests reviews under /titles/:title_id. Reads are public;
// mutations need authentication here and pass the object-level check in the
// service once the review is loaded.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)

		reviews.POST("", middleware.RequireAuthenticated(), h.Create)
		reviews.PATCH("/:review_id", middleware.RequireAuthenticated(), h.Update)
		reviews.DELETE("/:review_id", middleware.RequireAuthenticated(), h.Delete)
	}
}

func reviewIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, false
	}
	return id, true
}

// List returns the reviews of one title
// GET /api/v1/titles/:title_id/reviews?page=1&page_size=20
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c, h.limits)

	reviews, err := h.svc.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// Get retrieves a single review scoped to its title
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Create creates the caller's review for a title; one per title per user
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// Update partially updates a review; author, moderator or admin only
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.svc.Update(c.Request.Context(), middleware.Identity(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Delete removes a review; author, moderator or admin only
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := titleIDParam(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.Identity(c), titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
