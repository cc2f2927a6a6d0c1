package dom

import (
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func carouselSlides(doc *goquery.Document) *goquery.Selection {
	return doc.Find("[data-carousel]").First().Find(".slide")
}

// CarouselSlides counts the slides of the page's carousel.
func CarouselSlides(doc *goquery.Document) int {
	return carouselSlides(doc).Length()
}

// ApplyCarousel marks slide i active when active[i] is set. A nil active leaves the
// markup alone. A positive interval is published as data-interval, in milliseconds.
func ApplyCarousel(doc *goquery.Document, active []bool, interval time.Duration) {
	if active == nil {
		return
	}
	carouselSlides(doc).Each(func(i int, s *goquery.Selection) {
		toggleClass(s, "active", i < len(active) && active[i])
	})
	if interval > 0 {
		doc.Find("[data-carousel]").First().SetAttr("data-interval", strconv.FormatInt(interval.Milliseconds(), 10))
	}
}
