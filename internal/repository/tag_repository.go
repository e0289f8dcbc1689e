package repository

import (
	"context"

	"linkbucket/internal/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	// FirstOrCreate stores every tag that does not exist yet for its user
	// and slug, inside a single transaction. The returned tags carry their
	// persisted IDs in input order.
	FirstOrCreate(ctx context.Context, tags []models.Tag) ([]models.Tag, error)
	GetBySlug(ctx context.Context, userID uint, slug string) (*models.Tag, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Tag, error)
	CountLinks(ctx context.Context, tagIDs []uint) (map[uint]int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FirstOrCreate(ctx context.Context, tags []models.Tag) ([]models.Tag, error) {
	result := make([]models.Tag, 0, len(tags))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, candidate := range tags {
			tag := models.Tag{}
			err := tx.
				Where(models.Tag{UserID: candidate.UserID, Slug: candidate.Slug}).
				Attrs(models.Tag{Name: candidate.Name}).
				FirstOrCreate(&tag).Error
			if err != nil {
				return err
			}
			result = append(result, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *tagRepository) GetBySlug(ctx context.Context, userID uint, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("slug = ?", slug).
		First(&tag).Error
	return &tag, err
}

func (r *tagRepository) ListByUser(ctx context.Context, userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) CountLinks(ctx context.Context, tagIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(tagIDs))
	if len(tagIDs) == 0 {
		return counts, nil
	}

	type row struct {
		TagID uint
		Total int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.LinkTag{}).
		Select("tag_id, COUNT(link_id) AS total").
		Where("tag_id IN ?", tagIDs).
		Group("tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, entry := range rows {
		counts[entry.TagID] = entry.Total
	}
	return counts, nil
}
