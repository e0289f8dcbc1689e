package handlers

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"linkbucket/internal/config"
	"linkbucket/internal/models"
	"linkbucket/internal/service"
	"linkbucket/pkg/utils"
	"linkbucket/pkg/validator"
	"linkbucket/web"
)

func newTestTemplateHandler(t *testing.T) *TemplateHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	templates, err := utils.LoadTemplates(web.Templates())
	if err != nil {
		t.Fatalf("LoadTemplates returned error: %v", err)
	}

	cfg := &config.Config{SiteName: "Linkbucket", SiteURL: "http://localhost:8080"}
	handler, err := NewTemplateHandler(service.NewSitePageService(nil, nil, nil), cfg, templates)
	if err != nil {
		t.Fatalf("NewTemplateHandler returned error: %v", err)
	}
	return handler
}

type stubTagRepository struct {
	tags       []models.Tag
	links      map[uint]int64
	countCalls int
}

func (r *stubTagRepository) FirstOrCreate(_ context.Context, tags []models.Tag) ([]models.Tag, error) {
	result := make([]models.Tag, 0, len(tags))
	for _, candidate := range tags {
		found := false
		for _, existing := range r.tags {
			if existing.UserID == candidate.UserID && existing.Slug == candidate.Slug {
				result = append(result, existing)
				found = true
				break
			}
		}
		if found {
			continue
		}
		candidate.ID = uint(len(r.tags) + 1)
		r.tags = append(r.tags, candidate)
		result = append(result, candidate)
	}
	return result, nil
}

func (r *stubTagRepository) GetBySlug(_ context.Context, userID uint, slug string) (*models.Tag, error) {
	for _, tag := range r.tags {
		if tag.UserID == userID && tag.Slug == slug {
			copied := tag
			return &copied, nil
		}
	}
	return &models.Tag{}, gorm.ErrRecordNotFound
}

func (r *stubTagRepository) ListByUser(_ context.Context, userID uint) ([]models.Tag, error) {
	var result []models.Tag
	for _, tag := range r.tags {
		if tag.UserID == userID {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (r *stubTagRepository) CountLinks(_ context.Context, tagIDs []uint) (map[uint]int64, error) {
	r.countCalls++
	counts := make(map[uint]int64, len(tagIDs))
	for _, id := range tagIDs {
		counts[id] = r.links[id]
	}
	return counts, nil
}

func init() {
	validator.Init()
}
