package dom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/seo"
)

func TestApplyMetaReplacesPreviousTags(t *testing.T) {
	doc := parse(t, `<html><head><title>old</title><meta name="viewport" content="x"></head><body></body></html>`)

	ApplyMeta(doc, seo.Meta{
		Title:       "Portfólio",
		Description: `Obras & "projetos"`,
		Canonical:   "/portfolio.html?lang=pt",
		Alternates:  []seo.Alternate{{Href: "/portfolio.html?lang=en", Hreflang: "en"}},
		OG:          seo.OpenGraph{Title: "Portfólio", Locale: "pt_BR"},
		JSONLD:      []string{`{"name":"</script><b>"}`},
	})
	ApplyMeta(doc, seo.Meta{
		Canonical: "/portfolio.html?lang=en",
		OG:        seo.OpenGraph{Locale: "en_US"},
	})

	require.Equal(t, "Portfólio", doc.Find("title").Text())
	require.Equal(t, 1, doc.Find(`link[rel="canonical"]`).Length())
	require.Equal(t, "/portfolio.html?lang=en", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	require.Zero(t, doc.Find(`link[rel="alternate"]`).Length())
	require.Zero(t, doc.Find(`meta[name="description"]`).Length())
	require.Equal(t, "en_US", doc.Find(`meta[property="og:locale"]`).AttrOr("content", ""))
	require.Equal(t, 1, doc.Find(`meta[name="viewport"]`).Length())
	require.Zero(t, doc.Find(`script[type="application/ld+json"]`).Length())
}

func TestApplyMetaEscapes(t *testing.T) {
	doc := parse(t, `<html><head></head><body></body></html>`)
	ApplyMeta(doc, seo.Meta{
		Description: `Obras & "projetos"`,
		JSONLD:      []string{`{"name":"</script><b>x"}`},
	})
	require.Equal(t, `Obras & "projetos"`, doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	script := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 1, script.Length())
	require.Equal(t, `{"name":"<\/script><b>x"}`, script.Text())
	require.Zero(t, doc.Find("body b").Length())
}
