package service

import (
	"context"
	"errors"
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Page[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, ident permissions.Identity, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, ident permissions.Identity, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, ident permissions.Identity, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// requireTitle resolves the :title_id scope; every review operation is
// anchored to an existing title.
func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Page[dto.ReviewResponse], error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return dto.NewPage(responses, int(total), page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// Create injects the author from the verified identity and the title from
// the path. The duplicate pre-check runs only here, never on update; the DB
// unique constraint stays authoritative under concurrent creates, and its
// violation surfaces as the same validation error.
func (s *reviewService) Create(ctx context.Context, ident permissions.Identity, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByAuthorAndTitle(ident.UserID, titleID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: ident.UserID,
		Text:     in.Text,
		Score:    in.Score,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// reload with the author for the response
	review, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, ident permissions.Identity, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if !permissions.CanMutateAuthored(ident, http.MethodPatch, review.AuthorID) {
		return nil, ErrForbidden
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Save(review); err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, ident permissions.Identity, titleID, reviewID int64) error {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return err
	}

	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if !permissions.CanMutateAuthored(ident, http.MethodDelete, review.AuthorID) {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(review)
}
