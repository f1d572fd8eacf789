package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc    service.TitleService
	limits PageLimits
}

func NewTitleHandler(svc service.TitleService, limits PageLimits) *TitleHandler {
	return &TitleHandler{svc: svc, limits: limits}
}

// RegisterRoutes registers title routes: reads are public, writes are
// admin-gated.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:title_id", h.Get)
	rg.POST("", middleware.AdminOrReadOnly(), h.Create)
	rg.PATCH("/:title_id", middleware.AdminOrReadOnly(), h.Update)
	rg.DELETE("/:title_id", middleware.AdminOrReadOnly(), h.Delete)
}

func titleIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, false
	}
	return id, true
}

// List returns titles with the computed rating; filterable by category,
// genre, name and year
// GET /api/v1/titles?category=&genre=&name=&year=&page=1&page_size=20
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c, h.limits)

	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filter.Year = &year
	}

	titles, err := h.svc.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, titles)
}

// Get retrieves one title with nested category/genres and the rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := titleIDParam(c)
	if !ok {
		return
	}

	title, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// Create creates a title; category and genres are referenced by slug
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.TitleWriteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, title)
}

// Update partially updates a title
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := titleIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// Delete removes a title along with its reviews and comments
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := titleIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
