package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"linkbucket/internal/models"
	"linkbucket/internal/repository"
	"linkbucket/pkg/cache"
	"linkbucket/pkg/logger"
	"linkbucket/pkg/utils"
	"linkbucket/pkg/validator"
)

var (
	ErrTagNotFound    = errors.New("tag not found")
	ErrInvalidTagName = errors.New("tag name must contain at least one letter or digit")
	ErrInvalidUser    = errors.New("user id is required")
)

type TagService struct {
	repo  repository.TagRepository
	cache *cache.Cache
}

func NewTagService(repo repository.TagRepository, cacheService *cache.Cache) *TagService {
	if repo == nil {
		return nil
	}
	return &TagService{repo: repo, cache: cacheService}
}

// CreateTags stores the named tags for userID, reusing tags that already
// exist with the same slug. Duplicate names collapse onto the first
// occurrence; order follows the input.
func (s *TagService) CreateTags(ctx context.Context, userID uint, names []string) ([]models.Tag, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("tag repository not configured")
	}
	if userID == 0 {
		return nil, ErrInvalidUser
	}

	candidates := make([]models.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := validator.NormalizeSpaces(raw)
		if name == "" {
			continue
		}
		slug := utils.GenerateSlug(name)
		if slug == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTagName, name)
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		candidates = append(candidates, models.Tag{UserID: userID, Name: name, Slug: slug})
	}

	if len(candidates) == 0 {
		return nil, ErrInvalidTagName
	}

	tags, err := s.repo.FirstOrCreate(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("create tags: %w", err)
	}

	if err := s.cache.InvalidateTags(ctx, userID); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("user_id", userID).Warn("Failed to invalidate tags cache")
	}

	return tags, nil
}

func (s *TagService) GetTag(ctx context.Context, userID uint, slug string) (*models.Tag, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("tag repository not configured")
	}

	slug = utils.GenerateSlug(slug)
	if slug == "" {
		return nil, ErrTagNotFound
	}

	tag, err := s.repo.GetBySlug(ctx, userID, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) GetTags(ctx context.Context, userID uint) ([]models.Tag, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("tag repository not configured")
	}
	tags, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// Response returns the public view of tag including its link count.
func (s *TagService) Response(ctx context.Context, tag *models.Tag) (*models.ResponseTag, error) {
	if tag == nil {
		return nil, ErrTagNotFound
	}
	responses, err := s.ResponsesFor(ctx, []models.Tag{*tag})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// ResponsesFor returns the public view of tags, counting links for all of
// them in one query.
func (s *TagService) ResponsesFor(ctx context.Context, tags []models.Tag) ([]models.ResponseTag, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("tag repository not configured")
	}
	return s.responses(ctx, tags)
}

// Responses lists userID's tags in their public form, served from cache
// when possible.
func (s *TagService) Responses(ctx context.Context, userID uint) ([]models.ResponseTag, error) {
	var cached []models.ResponseTag
	if err := s.cache.GetCachedTags(ctx, userID, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheDisabled) && !errors.Is(err, cache.ErrCacheMiss) {
		logger.FromContext(ctx).WithError(err).Warn("Failed to read tags cache")
	}

	tags, err := s.GetTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses, err := s.responses(ctx, tags)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CacheTags(ctx, userID, responses); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to cache tags")
	}

	return responses, nil
}

func (s *TagService) responses(ctx context.Context, tags []models.Tag) ([]models.ResponseTag, error) {
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}

	counts, err := s.repo.CountLinks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count tag links: %w", err)
	}

	result := make([]models.ResponseTag, 0, len(tags))
	for _, tag := range tags {
		result = append(result, models.ResponseTag{
			Name:  tag.Name,
			Slug:  tag.Slug,
			Count: uint(counts[tag.ID]),
		})
	}
	return result, nil
}
