package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"linkbucket/internal/config"
	"linkbucket/internal/service"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	sitePageService *service.SitePageService
	config          *config.Config
}

func NewSEOHandler(sitePageService *service.SitePageService, cfg *config.Config) *SEOHandler {
	return &SEOHandler{
		sitePageService: sitePageService,
		config:          cfg,
	}
}

// Sitemap lists the home page followed by every /site/ page in footer order.
func (h *SEOHandler) Sitemap(c *gin.Context) {
	baseURL := h.baseURL()
	if baseURL == "" {
		c.String(http.StatusInternalServerError, "Unable to determine site URL")
		return
	}

	urls := []sitemapURL{
		{Loc: baseURL + "/", ChangeFreq: "daily", Priority: "1.0"},
	}

	if h.sitePageService != nil {
		for _, page := range h.sitePageService.List(c.Request.Context()) {
			urls = append(urls, sitemapURL{
				Loc:        joinURL(baseURL, page.Path),
				LastMod:    formatLastMod(page.UpdatedAt),
				ChangeFreq: "monthly",
				Priority:   "0.5",
			})
		}
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.XML(http.StatusOK, sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func (h *SEOHandler) Robots(c *gin.Context) {
	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
	}

	if baseURL := h.baseURL(); baseURL != "" {
		lines = append(lines, "Sitemap: "+joinURL(baseURL, "/sitemap.xml"))
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(strings.Join(lines, "\n")+"\n"))
}

func (h *SEOHandler) baseURL() string {
	if h.config == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(h.config.SiteURL), "/")
}

func joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func formatLastMod(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02")
}
