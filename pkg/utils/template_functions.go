package utils

import (
	"html/template"
	"strings"
	"time"

	"linkbucket/pkg/navigation"
)

func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// pathEquals reports whether value is the internal link for current.
		"pathEquals": func(current, value string) bool {
			value = strings.TrimSpace(value)
			if value == "" || (navigation.Item{Path: value}).IsExternal() {
				return false
			}
			return navigation.Normalize(current) == navigation.Normalize(value)
		},

		"formatDate": func(t time.Time, format string) string {
			layouts := map[string]string{
				"short":  "01/02/2006",
				"medium": "January 02, 2006",
				"long":   "Monday, January 02, 2006",
				"iso":    time.RFC3339,
			}
			if layout, ok := layouts[format]; ok {
				return t.Format(layout)
			}
			return t.Format(format)
		},

		"safe": func(s string) template.HTML { return template.HTML(s) },
	}
}
