package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/seo"
)

// managedAttr marks head elements owned by ApplyMeta so re-application replaces them.
const managedAttr = "data-managed"

// ApplyMeta writes canonical, hreflang alternates, Open Graph tags and JSON-LD scripts
// into <head>, replacing the ones a previous call wrote. Empty fields are skipped.
func ApplyMeta(doc *goquery.Document, meta seo.Meta) {
	head := doc.Find("head").First()
	if head.Length() == 0 {
		return
	}
	head.Find("[" + managedAttr + "]").Remove()
	if meta.Title != "" {
		doc.Find("title").First().SetText(meta.Title)
	}

	var b strings.Builder
	if meta.Description != "" {
		writeMeta(&b, "name", "description", meta.Description)
	}
	if meta.Canonical != "" {
		writeLink(&b, `rel="canonical"`, meta.Canonical)
	}
	for _, alt := range meta.Alternates {
		writeLink(&b, `rel="alternate" hreflang="`+html.EscapeString(alt.Hreflang)+`"`, alt.Href)
	}
	og := []struct{ prop, value string }{
		{"og:title", meta.OG.Title},
		{"og:description", meta.OG.Description},
		{"og:image", meta.OG.Image},
		{"og:type", meta.OG.Type},
		{"og:url", meta.OG.URL},
		{"og:site_name", meta.OG.SiteName},
		{"og:locale", meta.OG.Locale},
	}
	for _, tag := range og {
		if tag.value != "" {
			writeMeta(&b, "property", tag.prop, tag.value)
		}
	}
	for _, payload := range meta.JSONLD {
		if payload == "" {
			continue
		}
		b.WriteString(`<script type="application/ld+json" ` + managedAttr + `>`)
		b.WriteString(strings.ReplaceAll(payload, "</", `<\/`))
		b.WriteString(`</script>`)
	}
	if b.Len() > 0 {
		head.AppendHtml(b.String())
	}
}

func writeMeta(b *strings.Builder, key, name, content string) {
	b.WriteString(`<meta ` + key + `="` + html.EscapeString(name) + `" content="`)
	b.WriteString(html.EscapeString(content))
	b.WriteString(`" ` + managedAttr + `>`)
}

func writeLink(b *strings.Builder, rel, href string) {
	b.WriteString(`<link ` + rel + ` href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`" ` + managedAttr + `>`)
}
