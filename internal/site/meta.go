package site

import (
	"net/url"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/nav"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/seo"
)

// Page is what a MetaFunc sees of the page being applied.
type Page struct {
	URL      *url.URL
	Lang     string
	Title    string
	Messages i18n.Messages
	Detail   portfolio.Detail
}

// MetaFunc builds the head metadata for a page.
type MetaFunc func(Page) seo.Meta

// SiteName is the organization name used in titles and structured data.
const SiteName = "Portugal Engenharia"

// DefaultMeta returns the MetaFunc used by the web server: canonical and alternates
// against baseURL, Open Graph tags, Organization JSON-LD and, on a found project
// detail, the project title, breadcrumbs and CreativeWork JSON-LD.
func DefaultMeta(baseURL string, contactEmails []string) MetaFunc {
	return func(p Page) seo.Meta {
		canonical := seo.PageURL(baseURL, p.URL, p.Lang)
		m := seo.Meta{
			Canonical:  canonical,
			Alternates: seo.Alternates(baseURL, p.URL),
			OG: seo.OpenGraph{
				Title:    p.Title,
				Type:     "website",
				URL:      canonical,
				SiteName: SiteName,
				Locale:   seo.OGLocale(p.Lang),
			},
		}
		m.JSONLD = append(m.JSONLD, seo.JSON(seo.Organization(SiteName, seo.PageURL(baseURL, nil, p.Lang), "", contactEmails)))

		if p.Detail.Found {
			pr := p.Detail.Project
			m.Title = pr.Title + " | " + SiteName
			m.Description = pr.Summary
			m.OG.Title = m.Title
			m.OG.Description = pr.Summary
			m.OG.Image = pr.Cover
			m.OG.Type = "article"
			labels := nav.Labels(p.Lang, p.Messages)
			m.JSONLD = append(m.JSONLD,
				seo.JSON(seo.BreadcrumbList([]seo.BreadcrumbItem{
					{Name: labels["home"], Item: seo.PageURL(baseURL, nil, p.Lang)},
					{Name: labels["portfolio"], Item: seo.PageURL(baseURL, &url.URL{Path: "/portfolio.html"}, p.Lang)},
					{Name: pr.Title, Item: canonical},
				})),
				seo.JSON(seo.Project(pr.Title, pr.Summary, canonical, pr.Cover, pr.Year, pr.Location)),
			)
		}
		return m
	}
}
