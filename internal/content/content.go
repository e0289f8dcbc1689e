// Package content loads the markdown documents behind the /site/ pages and
// renders them to sanitized HTML.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"

	"linkbucket/pkg/validator"
)

//go:embed pages/*.md
var defaultPages embed.FS

var ErrNotFound = errors.New("content document not found")

type Document struct {
	Slug      string
	Title     string
	Summary   string
	UpdatedAt time.Time
	Body      string
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Store resolves documents from an optional override directory first and
// the embedded defaults second.
type Store struct {
	sources []fs.FS
}

func NewStore(overrideDir string) *Store {
	sources := make([]fs.FS, 0, 2)
	if dir := strings.TrimSpace(overrideDir); dir != "" {
		sources = append(sources, os.DirFS(dir))
	}
	sources = append(sources, DefaultFS())
	return &Store{sources: sources}
}

// NewStoreFS builds a store over explicit filesystems, highest priority first.
func NewStoreFS(sources ...fs.FS) *Store {
	filtered := make([]fs.FS, 0, len(sources))
	for _, source := range sources {
		if source != nil {
			filtered = append(filtered, source)
		}
	}
	return &Store{sources: filtered}
}

// DefaultFS exposes the embedded documents with pages/ as root.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultPages, "pages")
	if err != nil {
		panic(fmt.Sprintf("content: embedded pages missing: %v", err))
	}
	return sub
}

func (s *Store) Load(slug string) (Document, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Document{}, ErrNotFound
	}

	name := slug + ".md"
	for _, source := range s.sources {
		data, err := fs.ReadFile(source, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Document{}, fmt.Errorf("read %s: %w", name, err)
		}
		return Parse(slug, data)
	}

	return Document{}, ErrNotFound
}

func Parse(slug string, data []byte) (Document, error) {
	fm, body := splitFrontMatter(string(data))

	var meta frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return Document{}, fmt.Errorf("parse front matter of %s: %w", slug, err)
		}
	}

	doc := Document{
		Slug:      slug,
		Title:     strings.TrimSpace(meta.Title),
		Summary:   strings.TrimSpace(meta.Summary),
		UpdatedAt: parseDate(meta.UpdatedAt),
		Body:      body,
	}
	if doc.Title == "" {
		doc.Title = prettifySlug(slug)
	}
	return doc, nil
}

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

func (r *Renderer) Render(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(doc.Body), &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", doc.Slug, err)
	}
	return validator.SanitizeHTML(buf.String()), nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
	if !validator.IsSlug(slug) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
