package repository

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

var tagSort = query.Sortable{
	Columns: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	},
	Default: "name asc",
}

// TagRepository defines the interface for tag data operations.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	// GetOrCreateByNames resolves names to tags, creating missing ones.
	GetOrCreateByNames(ctx context.Context, names []string) ([]models.Tag, error)
	List(ctx context.Context, name string, page query.PageRequest) ([]*models.Tag, int64, error)
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetOrCreateByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			if err := tx.Exec(`
				INSERT INTO tags (name, created_at)
				VALUES (?, CURRENT_TIMESTAMP)
				ON CONFLICT (name) DO NOTHING`, name,
			).Error; err != nil {
				return err
			}
			var tag models.Tag
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context, name string, page query.PageRequest) ([]*models.Tag, int64, error) {
	base := query.ILike(r.db.WithContext(ctx).Model(&models.Tag{}), "name", name)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var tags []*models.Tag
	if err := query.Paginate(base, page, tagSort).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, count, nil
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM topic_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}
