package repository

import (
	"context"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// CategoryFilter holds list filters for categories. Public listings exclude
// inactive categories; moderator-scoped listings set IncludeInactive.
type CategoryFilter struct {
	Name            string
	IncludeInactive bool
	Page            query.PageRequest
}

var categorySort = query.Sortable{
	Columns: map[string]string{
		"name":         "name",
		"displayOrder": "display_order",
		"createdAt":    "created_at",
	},
	Default: "display_order asc",
}

// CategoryRepository defines the interface for category data operations.
// Counter columns on categories are mutated only by topic/post creation
// transactions and the stats recompute, never here.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]*models.Category, int64, error)
	Update(ctx context.Context, category *models.Category) error
	SetActive(ctx context.Context, id uint, active bool) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err == nil {
		cache.InvalidateCategoryList(ctx)
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, filter CategoryFilter) ([]*models.Category, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Category{})
	if !filter.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	base = query.ILike(base, "name", filter.Name)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var categories []*models.Category
	if err := query.Paginate(base, filter.Page, categorySort).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return err
	}
	cache.InvalidateCategory(ctx, category.ID)
	return nil
}

func (r *categoryRepository) SetActive(ctx context.Context, id uint, active bool) error {
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("is_active", active).Error
	if err == nil {
		cache.InvalidateCategory(ctx, id)
	}
	return err
}
