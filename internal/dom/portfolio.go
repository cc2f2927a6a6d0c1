package dom

import (
	"net/url"
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
)

// ApplyPortfolio renders the cards for tag into #portfolio-grid and marks the matching
// [data-tag] filter as the only active one. An empty or unknown tag selects every
// project. Anchor filters link back to this page filtered by their tag.
func ApplyPortfolio(doc *goquery.Document, store *portfolio.Store, tag, lang string, messages i18n.Messages) {
	grid := doc.Find("#portfolio-grid").First()
	if grid.Length() == 0 {
		return
	}
	if !slices.Contains(store.Tags(), tag) {
		tag = portfolio.AllTag
	}
	seeMore := messages.StringOr("portfolio.seeMore", portfolio.DefaultSeeMore)
	grid.SetHtml(portfolio.RenderGrid(store.ListByTag(tag), lang, seeMore))

	doc.Find("[data-tag]").Each(func(_ int, s *goquery.Selection) {
		t := s.AttrOr("data-tag", "")
		toggleClass(s, "active", t == tag)
		if goquery.NodeName(s) == "a" {
			s.SetAttr("href", links.Localize("?tag="+url.QueryEscape(t), lang))
		}
	})
}

// ApplyProjectDetail fills the detail page for slug. An unknown slug only puts the
// not-found message into #project-title. Pages without #project-title are left alone.
func ApplyProjectDetail(doc *goquery.Document, store *portfolio.Store, slug string) portfolio.Detail {
	d := store.Detail(slug)
	title := doc.Find("#project-title")
	if title.Length() == 0 {
		return d
	}
	if !d.Found {
		title.SetText(d.Message)
		return d
	}
	p := d.Project
	title.SetText(p.Title)
	doc.Find("#project-summary").SetText(p.Summary)
	doc.Find("#project-client").SetText(p.Client)
	doc.Find("#project-location").SetText(p.Location)
	doc.Find("#project-year").SetText(p.Year)
	doc.Find("#project-scope").SetText(p.Scope)
	doc.Find("#project-body").SetHtml(p.Body)
	setStyleProperty(doc.Find("#project-hero .img"), "background-image", "url('"+portfolio.CSSURL(p.Cover)+"')")
	return d
}
