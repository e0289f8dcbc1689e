package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkbucket/pkg/logger"
	"linkbucket/pkg/navigation"
)

func (h *TemplateHandler) basePageData(title, description string, extra gin.H) gin.H {
	fullTitle := h.config.SiteName
	if title != "" && title != h.config.SiteName {
		fullTitle = fmt.Sprintf("%s - %s", title, h.config.SiteName)
	}

	data := gin.H{
		"Title":       fullTitle,
		"Description": description,
		"Site": gin.H{
			"Name": h.config.SiteName,
			"URL":  h.config.SiteURL,
		},
		"Header": navigation.Header(),
		"Footer": h.footer.Items(),
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, status int, templateName, title, description string, extra gin.H) {
	data := h.basePageData(title, description, extra)
	if err := h.renderWithLayout(c, status, "base.html", templateName+".html", data); err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).WithField("template", templateName).Error("Failed to render page")
		h.renderError(c, http.StatusInternalServerError, "Server Error", "Failed to render page")
	}
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, layout, content string, data gin.H) error {
	h.setNavigationState(c, data)

	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		return fmt.Errorf("content template %q not found", content)
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		return fmt.Errorf("render content: %w", err)
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup(layout)
	if layoutTmpl == nil {
		return fmt.Errorf("layout template %q not found", layout)
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		return fmt.Errorf("render layout: %w", err)
	}

	c.Data(status, "text/html; charset=utf-8", output)
	return nil
}

func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	data["ActivePath"] = navigation.Normalize(c.Request.URL.Path)
}

// renderError renders error.html inside the layout. If that fails the
// error is reported as JSON instead.
func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	data := h.basePageData(title, msg, gin.H{
		"Error":      msg,
		"StatusCode": status,
	})

	if err := h.renderWithLayout(c, status, "base.html", "error.html", data); err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to render error template")
		c.JSON(status, gin.H{"error": msg})
	}
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
