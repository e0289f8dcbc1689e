package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkbucket/internal/service"
	"linkbucket/pkg/logger"
)

func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	extra := gin.H{}
	if h.sitePageService != nil {
		extra["Pages"] = h.sitePageService.List(c.Request.Context())
	}
	h.renderTemplate(c, http.StatusOK, "index", h.config.SiteName, "Save, tag and find your links.", extra)
}

func (h *TemplateHandler) RenderSitePage(c *gin.Context) {
	if h.sitePageService == nil {
		h.renderError(c, http.StatusNotFound, "Page Not Found", "Requested page not found")
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	page, err := h.sitePageService.Get(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrSitePageNotFound) {
			h.renderError(c, http.StatusNotFound, "Page Not Found", "Requested page not found")
			return
		}
		logger.FromContext(c.Request.Context()).WithError(err).WithField("slug", slug).Error("Failed to load site page")
		h.renderError(c, http.StatusInternalServerError, "Server Error", "Failed to load page")
		return
	}

	h.renderTemplate(c, http.StatusOK, "site_page", page.Title, page.Summary, gin.H{"Page": page})
}

func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
		return
	}
	h.renderError(c, http.StatusNotFound, "Page Not Found", "The requested page could not be found")
}
