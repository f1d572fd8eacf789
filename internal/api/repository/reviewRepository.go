package repository

import (
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Save(review *models.Review) error
	Delete(review *models.Review) error
	GetByID(reviewID int64) (*models.Review, error)
	GetByTitleAndID(titleID, reviewID int64) (*models.Review, error)
	GetByAuthorAndTitle(authorID string, titleID int64) (*models.Review, error)
	ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Save persists scalar fields only; the preloaded author must not be
// written back.
func (r *reviewRepository) Save(review *models.Review) error {
	return r.db.Omit(clause.Associations).Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Delete(review).Error
}

func (r *reviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("Author").First(&review, reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByTitleAndID loads a review scoped to its parent title; a review that
// belongs to a different title is not found.
func (r *reviewRepository) GetByTitleAndID(titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByAuthorAndTitle backs the one-review-per-author-per-title fast path.
func (r *reviewRepository) GetByAuthorAndTitle(authorID string, titleID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
