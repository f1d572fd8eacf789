package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Page[dto.TitleResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, in dto.TitleWriteDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Page[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i]))
	}

	return dto.NewPage(responses, int(total), page, pageSize), nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

// resolveCategory maps a category slug to its stored row; an unresolvable
// slug is a not-found on the referenced category.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// resolveGenres maps genre slugs to stored rows; any slug that fails to
// resolve fails the whole write.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return []models.Genre{}, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

func (s *titleService) Create(ctx context.Context, in dto.TitleWriteDTO) (*dto.TitleResponse, error) {
	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, in.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		title.Year = in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	// Every referenced slug must resolve before anything is written, so a
	// rejected update leaves the title exactly as it was.
	var genres []models.Genre
	if in.Genre != nil {
		genres, err = s.resolveGenres(ctx, in.Genre)
		if err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	if in.Genre != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}
