package navigation

import (
	"reflect"
	"testing"
)

func TestFooterEntries(t *testing.T) {
	expected := []Item{
		{Label: "About", Path: "/site/about"},
		{Label: "Open source", Path: "/site/open-source"},
		{Label: "Terms", Path: "/site/terms"},
		{Label: "Privacy", Path: "/site/privacy"},
		{Label: "API", Path: "/site/api"},
		{Label: "Powered by Linkbucket", Path: "https://github.com/ivan-avalos/linkbucket-go", External: true},
	}

	got := Footer()
	if len(got) != 6 {
		t.Fatalf("expected 6 footer entries, got %d", len(got))
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected footer entries: %+v", got)
	}
}

func TestFooterReturnsCopy(t *testing.T) {
	first := Footer()
	first[0].Label = "Changed"
	first[5].Path = "/elsewhere"

	second := Footer()
	if second[0].Label != "About" {
		t.Fatalf("expected canonical label to survive mutation, got %q", second[0].Label)
	}
	if second[5].Path != SourceURL {
		t.Fatalf("expected canonical attribution URL to survive mutation, got %q", second[5].Path)
	}
}

func TestItemIsExternal(t *testing.T) {
	cases := []struct {
		name     string
		item     Item
		expected bool
	}{
		{name: "Flagged", item: Item{Path: "/site/about", External: true}, expected: true},
		{name: "Absolute URL", item: Item{Path: "https://example.com"}, expected: true},
		{name: "Internal path", item: Item{Path: "/site/terms"}, expected: false},
		{name: "Relative path", item: Item{Path: "site/terms"}, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.IsExternal(); got != tc.expected {
				t.Fatalf("expected IsExternal %v, got %v", tc.expected, got)
			}
		})
	}

	if rel := (Item{Path: SourceURL, External: true}).Rel(); rel != "noopener" {
		t.Fatalf("expected noopener rel for external item, got %q", rel)
	}
	if rel := (Item{Path: "/site/api"}).Rel(); rel != "" {
		t.Fatalf("expected empty rel for internal item, got %q", rel)
	}
}

func TestSiteSlugs(t *testing.T) {
	expected := []string{"about", "open-source", "terms", "privacy", "api"}
	if got := SiteSlugs(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected slugs %v, got %v", expected, got)
	}

	if internal := Internal(Footer()); len(internal) != 5 {
		t.Fatalf("expected 5 internal entries, got %d", len(internal))
	}
}

func TestHeader(t *testing.T) {
	header := Header()
	paths := make([]string, 0, len(header))
	for _, item := range header {
		if item.IsExternal() {
			t.Fatalf("header must not contain external links, got %q", item.Path)
		}
		paths = append(paths, item.Path)
	}

	expected := []string{"/", "/site/about", "/site/open-source", "/site/terms", "/site/privacy", "/site/api"}
	if !reflect.DeepEqual(paths, expected) {
		t.Fatalf("expected header paths %v, got %v", expected, paths)
	}

	header[0].Label = "Changed"
	if Header()[0].Label != "Home" {
		t.Fatalf("expected Header to return a fresh copy")
	}
}

func TestLookup(t *testing.T) {
	item, ok := Lookup(" Open-Source/ ")
	if !ok {
		t.Fatalf("expected open-source to resolve")
	}
	if item.Label != "Open source" {
		t.Fatalf("expected Open source label, got %q", item.Label)
	}

	if _, ok := Lookup("linkbucket-go"); ok {
		t.Fatalf("external entry must not resolve as a site page")
	}
	if _, ok := Lookup(""); ok {
		t.Fatalf("empty slug must not resolve")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":               "/",
		"/":              "/",
		"site/about":     "/site/about",
		"//site//about/": "/site/about",
		" /site/api ":    "/site/api",
	}
	for input, expected := range cases {
		if got := Normalize(input); got != expected {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, expected, got)
		}
	}
}
