package dom

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/header"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/nav"
)

// langSwitchSelector matches the language switch controls.
const langSwitchSelector = ".lang-btn[data-lang], .btn-ghost[data-lang]"

// ApplyNav points the a[data-nav] slots at their localized routes, labels them and marks
// the one for currentPath as active.
func ApplyNav(doc *goquery.Document, lang, currentPath string, messages i18n.Messages) {
	for _, item := range nav.Build(lang, currentPath, messages) {
		sel := doc.Find(`a[data-nav="` + item.Key + `"]`)
		if sel.Length() == 0 {
			continue
		}
		sel.SetAttr("href", item.Href)
		if item.Label != "" {
			sel.SetText(item.Label)
		}
		toggleClass(sel, "active", item.Active)
		if item.Active {
			sel.SetAttr("aria-current", "page")
		} else {
			sel.RemoveAttr("aria-current")
		}
	}
}

// ApplyLangSwitch wires the language controls. Each control points at page in its own
// language (href on anchors, data-href otherwise), is labelled with the language's own
// name and is marked current when it selects lang.
func ApplyLangSwitch(doc *goquery.Document, lang string, page *url.URL) {
	doc.Find(langSwitchSelector).Each(func(_ int, s *goquery.Selection) {
		target := i18n.Resolve(strings.TrimSpace(s.AttrOr("data-lang", "")))
		href := SwitchHref(page, target)
		if goquery.NodeName(s) == "a" {
			s.SetAttr("href", href)
			s.SetAttr("hreflang", target)
		} else {
			s.SetAttr("data-href", href)
		}
		s.SetAttr("aria-label", i18n.DisplayName(target))
		active := target == lang
		toggleClass(s, "active", active)
		if active {
			s.SetAttr("aria-current", "true")
		} else {
			s.RemoveAttr("aria-current")
		}
	})
}

// SwitchHref is the site-relative href of page in lang. Other query parameters are kept;
// an explicit index.html collapses to the root.
func SwitchHref(page *url.URL, lang string) string {
	if page == nil {
		return links.Localize(links.Root, lang)
	}
	ref := &url.URL{Path: page.Path, RawQuery: page.RawQuery}
	if ref.Path == "" {
		ref.Path = "/"
	}
	return links.NormalizeIndex(ref.String(), lang)
}

// ApplyHeader reflects the header state on .site-header: is-scrolled, open and the menu
// toggle's aria-expanded.
func ApplyHeader(doc *goquery.Document, state header.State) {
	h := doc.Find(".site-header").First()
	if h.Length() == 0 {
		return
	}
	toggleClass(h, "is-scrolled", state.Scrolled)
	toggleClass(h, "open", state.MenuOpen)
	toggle := h.Find(".menu-toggle")
	if toggle.Length() > 0 && h.Find("#mobile-panel").Length() > 0 {
		toggle.SetAttr("aria-expanded", state.AriaExpanded())
	}
}
