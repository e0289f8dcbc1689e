package service

import (
	"context"
	"errors"
	"sync"

	"linkbucket/internal/content"
	"linkbucket/internal/models"
	"linkbucket/pkg/cache"
	"linkbucket/pkg/logger"
	"linkbucket/pkg/navigation"
)

var ErrSitePageNotFound = errors.New("site page not found")

// SitePageService serves the documents behind the footer's /site/ links.
// Rendered pages are kept in memory and, when enabled, in Redis.
type SitePageService struct {
	store    *content.Store
	renderer *content.Renderer
	cache    *cache.Cache

	mu    sync.RWMutex
	pages map[string]models.SitePage
}

func NewSitePageService(store *content.Store, renderer *content.Renderer, cacheService *cache.Cache) *SitePageService {
	if store == nil {
		store = content.NewStore("")
	}
	if renderer == nil {
		renderer = content.NewRenderer()
	}
	return &SitePageService{
		store:    store,
		renderer: renderer,
		cache:    cacheService,
		pages:    make(map[string]models.SitePage),
	}
}

func (s *SitePageService) Get(ctx context.Context, slug string) (*models.SitePage, error) {
	item, ok := navigation.Lookup(slug)
	if !ok {
		return nil, ErrSitePageNotFound
	}
	slug = item.Slug()

	s.mu.RLock()
	page, found := s.pages[slug]
	s.mu.RUnlock()
	if found {
		return &page, nil
	}

	var cached models.SitePage
	if err := s.cache.GetCachedSitePage(ctx, slug, &cached); err == nil {
		s.remember(cached)
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheDisabled) && !errors.Is(err, cache.ErrCacheMiss) {
		logger.FromContext(ctx).WithError(err).WithField("slug", slug).Warn("Failed to read site page cache")
	}

	doc, err := s.store.Load(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, ErrSitePageNotFound
		}
		return nil, err
	}

	html, err := s.renderer.Render(doc)
	if err != nil {
		return nil, err
	}

	page = models.SitePage{
		Slug:      slug,
		Path:      item.Path,
		Title:     doc.Title,
		Summary:   doc.Summary,
		HTML:      html,
		UpdatedAt: doc.UpdatedAt,
	}

	s.remember(page)
	if err := s.cache.CacheSitePage(ctx, slug, page); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("slug", slug).Warn("Failed to cache site page")
	}

	return &page, nil
}

// List returns page summaries in footer order. Pages that fail to load are
// logged and skipped.
func (s *SitePageService) List(ctx context.Context) []models.SitePage {
	slugs := navigation.SiteSlugs()
	result := make([]models.SitePage, 0, len(slugs))
	for _, slug := range slugs {
		page, err := s.Get(ctx, slug)
		if err != nil {
			logger.FromContext(ctx).WithError(err).WithField("slug", slug).Error("Failed to load site page")
			continue
		}
		summary := *page
		summary.HTML = ""
		result = append(result, summary)
	}
	return result
}

// Warm renders every site page once so the first visitor does not pay for it.
func (s *SitePageService) Warm(ctx context.Context) {
	pages := s.List(ctx)
	logger.Info("Site pages ready", map[string]interface{}{"count": len(pages)})
}

// Reset drops rendered pages from memory and Redis.
func (s *SitePageService) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.pages = make(map[string]models.SitePage)
	s.mu.Unlock()
	return s.cache.InvalidateSitePages(ctx)
}

func (s *SitePageService) remember(page models.SitePage) {
	s.mu.Lock()
	s.pages[page.Slug] = page
	s.mu.Unlock()
}
