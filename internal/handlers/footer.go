package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkbucket/pkg/navigation"
)

const footerTemplateName = "footer"

// FooterRenderer renders the site footer fragment. It holds no mutable
// state and is safe for concurrent use.
type FooterRenderer struct {
	tmpl *template.Template
}

func NewFooterRenderer(templates *template.Template) (*FooterRenderer, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	tmpl := templates.Lookup(footerTemplateName)
	if tmpl == nil {
		return nil, fmt.Errorf("template %q not found", footerTemplateName)
	}
	return &FooterRenderer{tmpl: tmpl}, nil
}

// Items returns the footer entries. Each call yields a fresh copy.
func (r *FooterRenderer) Items() []navigation.Item {
	return navigation.Footer()
}

func (r *FooterRenderer) Render() (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.Items()); err != nil {
		return "", fmt.Errorf("render footer: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// GetFooter serves the footer entries as JSON for clients that render their
// own chrome.
func (r *FooterRenderer) GetFooter(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": r.Items()})
}
