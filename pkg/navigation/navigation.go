package navigation

import (
	"net/url"
	"path"
	"strings"
)

// Item represents a navigation link that can be rendered in shared layouts.
// External items point outside the site and are rendered with rel="noopener".
type Item struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	External bool   `json:"external"`
}

// SourceURL is the attribution target shown at the end of the footer.
const SourceURL = "https://github.com/ivan-avalos/linkbucket-go"

// SitePrefix is the route prefix shared by the static site pages.
const SitePrefix = "/site/"

var footer = [...]Item{
	{Label: "About", Path: "/site/about"},
	{Label: "Open source", Path: "/site/open-source"},
	{Label: "Terms", Path: "/site/terms"},
	{Label: "Privacy", Path: "/site/privacy"},
	{Label: "API", Path: "/site/api"},
	{Label: "Powered by Linkbucket", Path: SourceURL, External: true},
}

// Footer returns the footer entries in display order. The slice is a fresh
// copy on every call.
func Footer() []Item {
	items := make([]Item, len(footer))
	copy(items, footer[:])
	return items
}

// Header returns the links shown in the page header: home followed by the
// footer's internal pages.
func Header() []Item {
	return append([]Item{{Label: "Home", Path: "/"}}, Internal(Footer())...)
}

func (i Item) IsExternal() bool {
	if i.External {
		return true
	}
	parsed, err := url.Parse(strings.TrimSpace(i.Path))
	if err != nil {
		return false
	}
	return parsed.IsAbs()
}

func (i Item) Rel() string {
	if i.IsExternal() {
		return "noopener"
	}
	return ""
}

// Slug returns the page slug of an internal /site/ entry, or "".
func (i Item) Slug() string {
	if i.IsExternal() {
		return ""
	}
	cleaned := Normalize(i.Path)
	if !strings.HasPrefix(cleaned, SitePrefix) {
		return ""
	}
	return strings.TrimPrefix(cleaned, SitePrefix)
}

func Internal(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if item.IsExternal() {
			continue
		}
		result = append(result, item)
	}
	return result
}

// SiteSlugs lists the slugs of the footer's /site/ pages in footer order.
func SiteSlugs() []string {
	slugs := make([]string, 0, len(footer))
	for _, item := range footer {
		if slug := item.Slug(); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

// Lookup finds the footer entry serving the given site slug.
func Lookup(slug string) (Item, bool) {
	slug = strings.ToLower(strings.Trim(strings.TrimSpace(slug), "/"))
	if slug == "" {
		return Item{}, false
	}
	for _, item := range footer {
		if item.Slug() == slug {
			return item, true
		}
	}
	return Item{}, false
}

func Normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "/"
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == "" {
		return "/"
	}
	return cleaned
}
