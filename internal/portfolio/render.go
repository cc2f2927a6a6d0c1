package portfolio

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
)

const (
	// NotFoundMessage is shown on the detail page for an unknown slug.
	NotFoundMessage = "Projeto não encontrado."
	// DefaultSeeMore labels the card link when the bundle has no portfolio.seeMore.
	DefaultSeeMore = "Ver detalhes →"
)

// Detail is the detail-page view for one slug.
type Detail struct {
	Found   bool
	Project Project
	Message string
}

// Detail looks slug up and never fails: an unknown slug yields the not-found view.
func (s *Store) Detail(slug string) Detail {
	p, ok := s.Find(slug)
	if !ok {
		return Detail{Message: NotFoundMessage}
	}
	return Detail{Found: true, Project: p}
}

// DetailHref is the localized link to a project's detail page.
func DetailHref(slug, lang string) string {
	return links.Localize("./project.html?slug="+url.QueryEscape(slug), lang)
}

// RenderCard renders the summary card of p. All text is escaped.
func RenderCard(p Project, lang, seeMore string) string {
	if seeMore == "" {
		seeMore = DefaultSeeMore
	}
	var b strings.Builder
	b.WriteString(`<article class="card">`)
	b.WriteString(`<div class="img-tile" style="height:180px"><div class="img" style="background-image:url('`)
	b.WriteString(html.EscapeString(CSSURL(p.Cover)))
	b.WriteString(`')"></div></div>`)
	b.WriteString(`<div class="mt-3">`)
	b.WriteString(`<div class="text-lg" style="font-weight:700">`)
	b.WriteString(html.EscapeString(p.Title))
	b.WriteString(`</div>`)
	b.WriteString(`<p class="mt-1" style="color:var(--muted)">`)
	b.WriteString(html.EscapeString(p.Summary))
	b.WriteString(`</p>`)
	b.WriteString(`<a class="link" href="`)
	b.WriteString(html.EscapeString(DetailHref(p.Slug, lang)))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(seeMore))
	b.WriteString(`</a></div></article>`)
	return b.String()
}

// RenderGrid renders the cards of projects in order.
func RenderGrid(projects []Project, lang, seeMore string) string {
	var b strings.Builder
	for _, p := range projects {
		b.WriteString(RenderCard(p, lang, seeMore))
	}
	return b.String()
}

var cssURLEscaper = strings.NewReplacer("'", "%27", `"`, "%22", "(", "%28", ")", "%29", "\\", "%5C")

// CSSURL makes u safe to embed in a single-quoted CSS url().
func CSSURL(u string) string {
	return cssURLEscaper.Replace(u)
}
