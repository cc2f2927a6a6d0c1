package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
)

// splitCount is the number of home page split blocks (home.splits.s1..s3).
const splitCount = 3

// FillTexts substitutes bundle text into the page. A [data-i18n] element gets the string at
// its key as text; a [data-i18n-attr="attr:key;..."] element gets it as attribute values.
// Absent keys and non-string values leave the element untouched. The structured sections
// (#pillars, #how-steps and the home splits) are re-rendered from their bundle arrays.
func FillTexts(doc *goquery.Document, messages i18n.Messages) {
	doc.Find("[data-i18n]").Each(func(_ int, s *goquery.Selection) {
		key := strings.TrimSpace(s.AttrOr("data-i18n", ""))
		if v, ok := messages.String(key); ok {
			s.SetText(v)
		}
	})
	doc.Find("[data-i18n-attr]").Each(func(_ int, s *goquery.Selection) {
		for _, pair := range strings.Split(s.AttrOr("data-i18n-attr", ""), ";") {
			attr, key, ok := strings.Cut(pair, ":")
			attr, key = strings.TrimSpace(attr), strings.TrimSpace(key)
			if !ok || attr == "" || key == "" {
				continue
			}
			if v, ok := messages.String(key); ok {
				s.SetAttr(attr, v)
			}
		}
	})
	fillPillars(doc, messages)
	fillSteps(doc, messages)
	fillSplits(doc, messages)
}

func fillPillars(doc *goquery.Document, messages i18n.Messages) {
	root := doc.Find("#pillars")
	if root.Length() == 0 {
		return
	}
	var b strings.Builder
	for _, p := range messages.Records("about.pillars") {
		b.WriteString(`<article class="card"><div class="text-lg" style="font-weight:700">`)
		b.WriteString(html.EscapeString(p.String("title")))
		b.WriteString(`</div><p class="mt-2" style="color:var(--muted)">`)
		b.WriteString(html.EscapeString(p.String("desc")))
		b.WriteString(`</p></article>`)
	}
	root.SetHtml(b.String())
}

func fillSteps(doc *goquery.Document, messages i18n.Messages) {
	root := doc.Find("#how-steps")
	if root.Length() == 0 {
		return
	}
	var b strings.Builder
	for _, s := range messages.Strings("about.how.steps") {
		b.WriteString(`<li class="card">`)
		b.WriteString(html.EscapeString(s))
		b.WriteString(`</li>`)
	}
	root.SetHtml(b.String())
}

func fillSplits(doc *goquery.Document, messages i18n.Messages) {
	splits, ok := messages.Section("home.splits")
	if !ok {
		return
	}
	for n := 1; n <= splitCount; n++ {
		data, ok := splits.Section("s" + strconv.Itoa(n))
		if !ok {
			continue
		}
		id := "#split" + strconv.Itoa(n)
		if v, ok := data.String("title"); ok {
			doc.Find(id + "-title").SetText(v)
		}
		if v, ok := data.String("desc"); ok {
			doc.Find(id + "-desc").SetText(v)
		}
		var b strings.Builder
		for _, pill := range data.Strings("pills") {
			b.WriteString(`<div class="pill">`)
			b.WriteString(html.EscapeString(pill))
			b.WriteString(`</div>`)
		}
		doc.Find(id + "-pills").SetHtml(b.String())
	}
}
