package service

import (
	"context"
	"errors"
	"regexp"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

// slugRe keeps slugs URL-safe; they are secondary keys used in paths.
var slugRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.CategoryResponse], error)
	Create(ctx context.Context, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.CategoryResponse], error) {
	categories, total, err := s.categoryRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, dto.CategoryFromModel(c))
	}

	return dto.NewPage(responses, int(total), page, pageSize), nil
}

func (s *categoryService) Create(ctx context.Context, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if !slugRe.MatchString(in.Slug) {
		return nil, ErrBadSlug
	}

	category := &models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}

	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

// DeleteBySlug removes a category; titles referencing it are deleted by the
// store's cascade, along with their reviews and comments.
func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
