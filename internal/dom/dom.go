// Package dom applies a message bundle and page state to a parsed HTML page.
//
// Every Apply function is idempotent and a no-op when the targeted elements are absent.
package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SetLang sets the lang attribute of the root element.
func SetLang(doc *goquery.Document, lang string) {
	doc.Find("html").SetAttr("lang", lang)
}

// SetYear writes year into #year.
func SetYear(doc *goquery.Document, year int) {
	doc.Find("#year").SetText(strconv.Itoa(year))
}

// ShowAlert puts msg in a single role="alert" banner at the top of the body.
func ShowAlert(doc *goquery.Document, msg string) {
	doc.Find("[data-alert]").Remove()
	doc.Find("body").First().PrependHtml(`<div class="site-alert" role="alert" data-alert>` + html.EscapeString(msg) + `</div>`)
}

func toggleClass(s *goquery.Selection, class string, on bool) {
	if on {
		s.AddClass(class)
		return
	}
	s.RemoveClass(class)
}

// setStyleProperty sets one declaration in the inline style of s, keeping the others.
func setStyleProperty(s *goquery.Selection, prop, value string) {
	s.Each(func(_ int, el *goquery.Selection) {
		decls := make([]string, 0, 4)
		for _, d := range strings.Split(el.AttrOr("style", ""), ";") {
			name, _, _ := strings.Cut(d, ":")
			if strings.TrimSpace(d) == "" || strings.EqualFold(strings.TrimSpace(name), prop) {
				continue
			}
			decls = append(decls, strings.TrimSpace(d))
		}
		decls = append(decls, prop+":"+value)
		el.SetAttr("style", strings.Join(decls, ";"))
	})
}
