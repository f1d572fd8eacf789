package handler

import (
	"net/http"

	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth     service.AuthService
	User     service.UserService
	Category service.CategoryService
	Genre    service.GenreService
	Title    service.TitleService
	Review   service.ReviewService
	Comment  service.CommentService
}

// NewRouter assembles the versioned API surface. Catalog groups resolve the
// identity optionally so anonymous reads pass; the user group requires a
// token outright.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limits := PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	v1 := r.Group("/api/v1")

	NewAuthHandler(svcs.Auth).RegisterRoutes(v1.Group("/auth"))

	users := v1.Group("/users", middleware.Authenticate(svcs.Auth))
	NewUserHandler(svcs.User, limits).RegisterRoutes(users)

	categories := v1.Group("/categories", middleware.Identify(svcs.Auth))
	NewCategoryHandler(svcs.Category, limits).RegisterRoutes(categories)

	genres := v1.Group("/genres", middleware.Identify(svcs.Auth))
	NewGenreHandler(svcs.Genre, limits).RegisterRoutes(genres)

	titles := v1.Group("/titles", middleware.Identify(svcs.Auth))
	NewTitleHandler(svcs.Title, limits).RegisterRoutes(titles)
	NewReviewHandler(svcs.Review, limits).RegisterRoutes(titles)
	NewCommentHandler(svcs.Comment, limits).RegisterRoutes(titles)

	return r
}
