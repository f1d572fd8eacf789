package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc    service.CategoryService
	limits PageLimits
}

func NewCategoryHandler(svc service.CategoryService, limits PageLimits) *CategoryHandler {
	return &CategoryHandler{svc: svc, limits: limits}
}

// RegisterRoutes registers category routes: reads are public, writes are
// admin-gated.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:slug", h.Get)
	rg.POST("", middleware.AdminOrReadOnly(), h.Create)
	rg.DELETE("/:slug", middleware.AdminOrReadOnly(), h.Delete)
}

// List returns categories; ?search= filters on name
// GET /api/v1/categories?search=&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c, h.limits)

	categories, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Get retrieves a category by slug
// GET /api/v1/categories/:slug
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Create creates a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Delete removes a category; dependent titles cascade away with it
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
