package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkbucket/internal/service"
	"linkbucket/pkg/logger"
)

type SitePageHandler struct {
	service *service.SitePageService
}

func NewSitePageHandler(service *service.SitePageService) *SitePageHandler {
	return &SitePageHandler{service: service}
}

func (h *SitePageHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": h.service.List(c.Request.Context())})
}

func (h *SitePageHandler) Get(c *gin.Context) {
	page, err := h.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrSitePageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to load site page")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}
