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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Page[dto.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, ident permissions.Identity, titleID, reviewID int64, in dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, ident permissions.Identity, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, ident permissions.Identity, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

// requireParents checks that both path parents exist. The title/review
// pairing itself is enforced by the list filter and the scoped lookups, not
// here: a review paired with the wrong title lists as empty.
func (s *commentService) requireParents(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

// requireScopedReview resolves the review strictly within the title; used on
// writes so a mismatched (title, review) pair is a not-found.
func (s *commentService) requireScopedReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Page[dto.CommentResponse], error) {
	if err := s.requireParents(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByTitleAndReview(titleID, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPage(responses, int(total), page, pageSize), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	if err := s.requireParents(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetScoped(titleID, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// Create injects author, title and review from the identity and the path;
// the payload cannot override any of them.
func (s *commentService) Create(ctx context.Context, ident permissions.Identity, titleID, reviewID int64, in dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	review, err := s.requireScopedReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TitleID:  titleID,
		ReviewID: review.ID,
		AuthorID: ident.UserID,
		Text:     in.Text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetScoped(titleID, reviewID, comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, ident permissions.Identity, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.requireScopedReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetScoped(titleID, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if !permissions.CanMutateAuthored(ident, http.MethodPatch, comment.AuthorID) {
		return nil, ErrForbidden
	}

	comment.Text = in.Text
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, ident permissions.Identity, titleID, reviewID, commentID int64) error {
	if _, err := s.requireScopedReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetScoped(titleID, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if !permissions.CanMutateAuthored(ident, http.MethodDelete, comment.AuthorID) {
		return ErrForbidden
	}

	return s.commentRepo.Delete(comment)
}
