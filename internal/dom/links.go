package dom

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
)

// LocalizeLinks sets the lang parameter on every internal page link and maps explicit
// index.html references to the root. External links are left alone.
func LocalizeLinks(doc *goquery.Document, lang string) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		switch {
		case links.IsIndex(href):
			s.SetAttr("href", links.NormalizeIndex(href, lang))
		case links.IsPage(href):
			s.SetAttr("href", links.Localize(href, lang))
		}
	})
}
