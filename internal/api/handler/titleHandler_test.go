package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTitleRouter(authSvc *MockAuthService, titleSvc *MockTitleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	titles := r.Group("/api/v1/titles", middleware.Identify(authSvc))
	NewTitleHandler(titleSvc, PageLimits{Default: 20, Max: 100}).RegisterRoutes(titles)
	return r
}

func adminClaims() *service.Claims {
	return &service.Claims{UserID: "a-1", Username: "boss", Role: "admin"}
}

func TestTitleGet_IncludesRating(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	rating := 9.0
	titleSvc.On("GetByID", mock.Anything, int64(10)).Return(&dto.TitleResponse{
		ID:     10,
		Name:   "Dune",
		Rating: &rating,
		Category: &dto.CategoryResponse{Name: "Books", Slug: "books"},
		Genre:    []dto.GenreResponse{{Name: "Sci-Fi", Slug: "sci-fi"}},
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles/10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 9.0, resp["rating"])
	assert.Equal(t, "books", resp["category"].(map[string]any)["slug"])
}

func TestTitleGet_NullRatingWhenUnreviewed(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	titleSvc.On("GetByID", mock.Anything, int64(10)).Return(&dto.TitleResponse{ID: 10, Name: "Dune"}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles/10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	val, present := resp["rating"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestTitleCreate_AnonymousRejected(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	body, _ := json.Marshal(dto.TitleWriteDTO{Name: "Dune"})
	req, _ := http.NewRequest("POST", "/api/v1/titles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	titleSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreate_NonAdminRejected(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	authSvc.On("ValidateToken", "user-token").Return(userClaims("u-1"), nil)

	body, _ := json.Marshal(dto.TitleWriteDTO{Name: "Dune"})
	req, _ := http.NewRequest("POST", "/api/v1/titles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	titleSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreate_AdminAllowed(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	authSvc.On("ValidateToken", "admin-token").Return(adminClaims(), nil)

	category := "books"
	in := dto.TitleWriteDTO{Name: "Dune", Category: &category, Genre: []string{"sci-fi"}}
	titleSvc.On("Create", mock.Anything, in).Return(&dto.TitleResponse{ID: 10, Name: "Dune"}, nil)

	body, _ := json.Marshal(in)
	req, _ := http.NewRequest("POST", "/api/v1/titles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	titleSvc.AssertExpectations(t)
}

func TestTitleCreate_UnknownGenreSlug(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	authSvc.On("ValidateToken", "admin-token").Return(adminClaims(), nil)
	titleSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrGenreNotFound)

	req, _ := http.NewRequest("POST", "/api/v1/titles", bytes.NewBufferString(`{"name":"Dune","genre":["nope"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTitleList_FiltersParsed(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	year := 1965
	expected := repository.TitleFilter{CategorySlug: "books", GenreSlug: "sci-fi", Name: "dune", Year: &year}
	titleSvc.On("List", mock.Anything, expected, 1, 20).
		Return(dto.NewPage([]dto.TitleResponse{}, 0, 1, 20), nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles?category=books&genre=sci-fi&name=dune&year=1965", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	titleSvc.AssertExpectations(t)
}

func TestTitleList_BadYearFilter(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	req, _ := http.NewRequest("GET", "/api/v1/titles?year=abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	titleSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleDelete_AdminAllowed(t *testing.T) {
	authSvc := new(MockAuthService)
	titleSvc := new(MockTitleService)
	router := setupTitleRouter(authSvc, titleSvc)

	authSvc.On("ValidateToken", "admin-token").Return(adminClaims(), nil)
	titleSvc.On("Delete", mock.Anything, int64(10)).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/titles/10", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
