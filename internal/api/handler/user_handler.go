package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	limits      PageLimits
}

func NewUserHandler(userService service.UserService, limits PageLimits) *UserHandler {
	return &UserHandler{userService: userService, limits: limits}
}

// RegisterRoutes registers user routes. The whole group already requires
// authentication; everything except /me additionally requires admin.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.PATCH("/me", h.UpdateMe)

	admin := rg.Group("", middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:username", h.Get)
		admin.PATCH("/:username", h.Update)
		admin.DELETE("/:username", h.Delete)
	}
}

// Me returns the caller's own profile
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	ident := middleware.Identity(c)

	user, err := h.userService.GetMe(ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the caller's own profile; role and email are ignored
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ident := middleware.Identity(c)

	var req dto.UpdateMeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateMe(ident.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// List returns users; ?search= is an exact username match
// GET /api/v1/users?search=&page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c, h.limits)
	search := c.Query("search")

	users, err := h.userService.List(search, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Create creates a user with an explicit role
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get retrieves a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update partially updates a user, including the role field
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateByUsername(c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete removes a user
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteByUsername(c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
