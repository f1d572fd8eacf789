package repository

import (
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Save(comment *models.Comment) error
	Delete(comment *models.Comment) error
	GetScoped(titleID, reviewID, commentID int64) (*models.Comment, error)
	ListByTitleAndReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Save persists scalar fields only; the preloaded author must not be
// written back.
func (r *commentRepository) Save(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Save(comment).Error
}

func (r *commentRepository) Delete(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}

// GetScoped loads a comment that belongs to the given (title, review) pair;
// any mismatch in the chain is a not-found.
func (r *commentRepository) GetScoped(titleID, reviewID, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.
		Where("id = ? AND title_id = ? AND review_id = ?", commentID, titleID, reviewID).
		Preload("Author").
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTitleAndReview filters on both parents, so a review paired with the
// wrong title yields an empty list rather than leaking foreign comments.
func (r *commentRepository) ListByTitleAndReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{}).Where("title_id = ? AND review_id = ?", titleID, reviewID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.
		Where("title_id = ? AND review_id = ?", titleID, reviewID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
