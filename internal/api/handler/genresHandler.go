package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc    service.GenreService
	limits PageLimits
}

func NewGenreHandler(svc service.GenreService, limits PageLimits) *GenreHandler {
	return &GenreHandler{svc: svc, limits: limits}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:slug", h.Get)
	rg.POST("", middleware.AdminOrReadOnly(), h.Create)
	rg.DELETE("/:slug", middleware.AdminOrReadOnly(), h.Delete)
}

// GET /api/v1/genres?search=&page=1&page_size=20
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c, h.limits)

	genres, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, genres)
}

// GET /api/v1/genres/:slug
func (h *GenreHandler) Get(c *gin.Context) {
	genre, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, genre)
}

// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
