package handlers

import (
	"fmt"
	"html/template"

	"linkbucket/internal/config"
	"linkbucket/internal/service"
)

type TemplateHandler struct {
	sitePageService *service.SitePageService
	templates       *template.Template
	footer          *FooterRenderer
	config          *config.Config
}

func NewTemplateHandler(sitePageService *service.SitePageService, cfg *config.Config, templates *template.Template) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	footer, err := NewFooterRenderer(templates)
	if err != nil {
		return nil, err
	}

	return &TemplateHandler{
		sitePageService: sitePageService,
		templates:       templates,
		footer:          footer,
		config:          cfg,
	}, nil
}

func (h *TemplateHandler) Footer() *FooterRenderer {
	return h.footer
}
