package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkbucket/internal/models"
	"linkbucket/internal/service"
	"linkbucket/pkg/logger"
)

type TagHandler struct {
	service *service.TagService
}

func NewTagHandler(service *service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) List(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service not configured"})
		return
	}

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	tags, err := h.service.Responses(c.Request.Context(), userID)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to load tags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) Get(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service not configured"})
		return
	}

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tag, err := h.service.GetTag(ctx, userID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		logger.FromContext(ctx).WithError(err).Error("Failed to load tag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tag"})
		return
	}

	response, err := h.service.Response(ctx, tag)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to count tag links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": response})
}

func (h *TagHandler) Create(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service not configured"})
		return
	}

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req models.CreateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	tags, err := h.service.CreateTags(ctx, userID, req.Names)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTagName) || errors.Is(err, service.ErrInvalidUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.FromContext(ctx).WithError(err).Error("Failed to create tags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tags"})
		return
	}

	response, err := h.service.ResponsesFor(ctx, tags)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to count tag links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tags"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tags": response})
}

func parseUserID(c *gin.Context) (uint, bool) {
	value, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil || value == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(value), true
}
