package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratingSelect computes the title rating at query time from the reviews
// table. NULL when the title has no reviews; never persisted.
const ratingSelect = "titles.*, (SELECT AVG(score)::float8 FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows the title list. Zero values mean no filter.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	GetAll(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) GetAll(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.CategorySlug != "" {
		query = query.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Select(ratingSelect).
		Preload("Genres").
		Preload("Category").
		Order("titles.id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Genres").
		Preload("Category").
		First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	// Omit("Genres.*") links the already-resolved genres without upserting
	// the genre rows themselves; the category is referenced by its FK only.
	if err := r.db.WithContext(ctx).Omit("Genres.*", "Category").Create(title).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// associations are managed separately; only scalar columns change here
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(title).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace title genres: %w", err)
	}
	title.Genres = genres
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
