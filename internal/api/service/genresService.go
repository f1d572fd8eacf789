package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.GenreResponse], error)
	Create(ctx context.Context, in dto.CreateGenreDTO) (*dto.GenreResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.GenreResponse, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.GenreResponse], error) {
	genres, total, err := s.genreRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		responses = append(responses, dto.GenreFromModel(g))
	}

	return dto.NewPage(responses, int(total), page, pageSize), nil
}

func (s *genreService) Create(ctx context.Context, in dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if !slugRe.MatchString(in.Slug) {
		return nil, ErrBadSlug
	}

	genre := &models.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}

	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) GetBySlug(ctx context.Context, slug string) (*dto.GenreResponse, error) {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
