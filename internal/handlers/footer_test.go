package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkbucket/pkg/navigation"
)

type footerLink struct {
	Label string
	Href  string
}

var expectedFooterLinks = []footerLink{
	{Label: "About", Href: "/site/about"},
	{Label: "Open source", Href: "/site/open-source"},
	{Label: "Terms", Href: "/site/terms"},
	{Label: "Privacy", Href: "/site/privacy"},
	{Label: "API", Href: "/site/api"},
	{Label: "Powered by Linkbucket", Href: "https://github.com/ivan-avalos/linkbucket-go"},
}

func renderFooterDocument(t *testing.T, r *FooterRenderer) *goquery.Document {
	t.Helper()
	html, err := r.Render()
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)
	return doc
}

func footerLinks(doc *goquery.Selection) []footerLink {
	var links []footerLink
	doc.Find("footer a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, footerLink{Label: strings.TrimSpace(s.Text()), Href: href})
	})
	return links
}

func TestFooterRendersSixEntries(t *testing.T) {
	handler := newTestTemplateHandler(t)
	doc := renderFooterDocument(t, handler.Footer())

	require.Equal(t, 1, doc.Find("footer").Length())
	require.Equal(t, 1, doc.Find("footer .container").Length())
	assert.Equal(t, expectedFooterLinks, footerLinks(doc.Selection))
}

func TestFooterLabelsHaveNoPadding(t *testing.T) {
	handler := newTestTemplateHandler(t)
	doc := renderFooterDocument(t, handler.Footer())

	doc.Find("footer a").Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, strings.TrimSpace(s.Text()), s.Text())
	})
}

func TestFooterAttributionLink(t *testing.T) {
	handler := newTestTemplateHandler(t)
	doc := renderFooterDocument(t, handler.Footer())

	attribution := doc.Find("footer a").Last()
	href, _ := attribution.Attr("href")
	rel, _ := attribution.Attr("rel")

	assert.Equal(t, "Powered by Linkbucket", attribution.Text())
	assert.Equal(t, "https://github.com/ivan-avalos/linkbucket-go", href)
	assert.Equal(t, "noopener", rel)
	assert.True(t, attribution.HasClass("text-muted"))
	assert.True(t, attribution.HasClass("float-right"))

	doc.Find("footer a").Slice(0, 5).Each(func(_ int, s *goquery.Selection) {
		_, hasRel := s.Attr("rel")
		assert.False(t, hasRel, "internal link %q must not carry rel", s.Text())
		assert.True(t, s.HasClass("text-primary"))
	})
}

func TestFooterRenderIsIdempotent(t *testing.T) {
	handler := newTestTemplateHandler(t)
	footer := handler.Footer()

	first, err := footer.Render()
	require.NoError(t, err)

	var wg sync.WaitGroup
	outputs := make([]template.HTML, 8)
	for i := range outputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := footer.Render()
			assert.NoError(t, err)
			outputs[i] = out
		}(i)
	}
	wg.Wait()

	for _, out := range outputs {
		assert.Equal(t, first, out)
	}
}

func TestFooterItemsCannotBeMutated(t *testing.T) {
	handler := newTestTemplateHandler(t)
	footer := handler.Footer()

	items := footer.Items()
	items[0].Label = "Hacked"
	items[0].Path = "/evil"

	doc := renderFooterDocument(t, footer)
	assert.Equal(t, expectedFooterLinks, footerLinks(doc.Selection))
}

func TestNewFooterRendererRequiresTemplate(t *testing.T) {
	_, err := NewFooterRenderer(nil)
	require.Error(t, err)

	_, err = NewFooterRenderer(template.Must(template.New("base.html").Parse("<main></main>")))
	require.Error(t, err)
}

func TestGetFooterJSON(t *testing.T) {
	handler := newTestTemplateHandler(t)
	router := gin.New()
	router.GET("/api/v1/footer", handler.Footer().GetFooter)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/footer", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Items []navigation.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, navigation.Footer(), body.Items)
}
