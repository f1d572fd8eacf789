package handler

import (
	"context"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) RequestLoginCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ConfirmLoginCode(ctx context.Context, email, code string) (string, string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) AccessTokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockTitleService mocks service.TitleService
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Page[dto.TitleResponse], error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[dto.TitleResponse]), args.Error(1)
}

func (m *MockTitleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, in dto.TitleWriteDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewService mocks service.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Page[dto.ReviewResponse], error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, ident permissions.Identity, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, ident, titleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, ident permissions.Identity, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, ident, titleID, reviewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, ident permissions.Identity, titleID, reviewID int64) error {
	args := m.Called(ctx, ident, titleID, reviewID)
	return args.Error(0)
}

// MockCategoryService mocks service.CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.CategoryResponse], error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[dto.CategoryResponse]), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockUserService mocks service.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(search string, page, pageSize int) (*dto.Page[dto.UserResponse], error) {
	args := m.Called(search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[dto.UserResponse]), args.Error(1)
}

func (m *MockUserService) GetByUsername(username string) (*dto.UserResponse, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Create(in dto.CreateUserDTO) (*dto.UserResponse, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) UpdateByUsername(username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	args := m.Called(username, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) DeleteByUsername(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserService) GetMe(userID string) (*dto.UserResponse, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) UpdateMe(userID string, in dto.UpdateMeDTO) (*dto.UserResponse, error) {
	args := m.Called(userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}
