package site

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
)

const page = `<!doctype html><html><head><title data-i18n="portfolio.title">x</title></head><body>
<header class="site-header">
  <a data-nav="home" href="./">H</a><a data-nav="portfolio" href="./portfolio.html">P</a>
  <button class="menu-toggle" aria-expanded="false"></button><nav id="mobile-panel"></nav>
  <a class="lang-btn" data-lang="pt" href="#">PT</a><a class="lang-btn" data-lang="en" href="#">EN</a>
</header>
<h1 data-i18n="portfolio.title">x</h1>
<a id="about" href="sobre.html">about</a>
<div id="portfolio-grid"></div>
<form id="contact-form"><button>Enviar</button></form>
<div data-carousel><div class="slide">1</div><div class="slide">2</div></div>
<span id="year"></span>
</body></html>`

func parseDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func locales() i18n.Loader {
	return i18n.DirLoader("../../locales")
}

func fixedClock() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

func TestBootAppliesLanguageFromURL(t *testing.T) {
	store, err := portfolio.Embedded()
	require.NoError(t, err)

	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/portfolio.html?tag=infra&lang=en"), locales(),
		WithPortfolio(store), WithClock(fixedClock), WithStatic())
	defer s.Close()

	require.NoError(t, s.Boot(context.Background()))
	require.Equal(t, "en", s.Lang())
	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "Portfolio", doc.Find("h1").Text())
	require.Equal(t, "sobre.html?lang=en", doc.Find("#about").AttrOr("href", ""))
	require.Equal(t, 1, doc.Find("#portfolio-grid article.card").Length())
	require.Equal(t, "2026", doc.Find("#year").Text())
	require.True(t, doc.Find(".slide").First().HasClass("active"))
	require.Equal(t, "/portfolio.html?tag=infra&lang=en", doc.Find(`.lang-btn[data-lang="en"]`).AttrOr("href", ""))
}

func TestBootCollapsesInvalidLanguage(t *testing.T) {
	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/?lang=fr"), locales(), WithStatic())
	defer s.Close()

	require.NoError(t, s.Boot(context.Background()))
	require.Equal(t, i18n.Default, s.Lang())
	require.Equal(t, "lang=pt", s.URL().RawQuery)
}

func TestBootFailsWithoutBundle(t *testing.T) {
	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/"), i18n.LoaderFunc(func(context.Context, string) (i18n.Messages, error) {
		return nil, i18n.ErrBundleNotFound
	}), WithStatic())
	defer s.Close()

	err := s.Boot(context.Background())
	require.ErrorIs(t, err, i18n.ErrBundleNotFound)
	require.Equal(t, "x", doc.Find("h1").Text())
}

func TestApplySwitchesLanguage(t *testing.T) {
	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/portfolio.html"), locales(), WithStatic())
	defer s.Close()

	require.NoError(t, s.Boot(context.Background()))
	require.Equal(t, "Portfólio", doc.Find("h1").Text())

	require.NoError(t, s.Apply(context.Background(), "es"))
	require.Equal(t, "es", s.Lang())
	require.Equal(t, "sobre.html?lang=es", doc.Find("#about").AttrOr("href", ""))
	// es has no nav section: the built-in labels apply.
	require.Equal(t, "Inicio", doc.Find(`a[data-nav="home"]`).Text())
	require.Equal(t, "lang=es", s.URL().RawQuery)
}

// gatedLoader blocks loads of the gated language until release is closed, ignoring
// cancellation so a stale result still arrives.
type gatedLoader struct {
	next    i18n.Loader
	gated   string
	started chan struct{}
	release chan struct{}
}

func (g *gatedLoader) Load(ctx context.Context, lang string) (i18n.Messages, error) {
	if lang == g.gated {
		close(g.started)
		<-g.release
	}
	return g.next.Load(ctx, lang)
}

func TestApplyLastRequestedWins(t *testing.T) {
	loader := &gatedLoader{next: locales(), gated: "en", started: make(chan struct{}), release: make(chan struct{})}
	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/portfolio.html"), loader, WithStatic())
	defer s.Close()

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = s.Apply(context.Background(), "en")
	}()
	<-loader.started

	require.NoError(t, s.Apply(context.Background(), "es"))
	close(loader.release)
	wg.Wait()

	require.ErrorIs(t, firstErr, ErrSuperseded)
	require.Equal(t, "es", s.Lang())
	require.Equal(t, "es", doc.Find("html").AttrOr("lang", ""))
}

func TestApplyCancelsInFlightLoad(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	loader := i18n.LoaderFunc(func(ctx context.Context, lang string) (i18n.Messages, error) {
		if lang == "en" {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return locales().Load(ctx, lang)
	})
	s := New(parseDoc(t), mustURL(t, "/"), loader, WithStatic())
	defer s.Close()

	done := make(chan error, 1)
	go func() { done <- s.Apply(context.Background(), "en") }()
	<-started
	require.NoError(t, s.Apply(context.Background(), "pt"))

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load was not cancelled")
	}
	require.Equal(t, "pt", s.Lang())
}

func TestReapplyReleasesCarousel(t *testing.T) {
	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/"), locales(), WithCarouselInterval(2*time.Millisecond))

	require.NoError(t, s.Boot(context.Background()))
	first := s.carousel
	require.Eventually(t, func() bool { return first.Current() == 1 }, 2*time.Second, time.Millisecond)

	require.NoError(t, s.Apply(context.Background(), "en"))
	require.NotSame(t, first, s.carousel)

	// The first controller's timer is gone: its index no longer moves.
	at := first.Current()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, at, first.Current())

	s.Close()
	second := s.carousel
	at = second.Current()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, at, second.Current())

	require.ErrorIs(t, s.Apply(context.Background(), "pt"), ErrClosed)
}

func TestHeaderAndFormInteractions(t *testing.T) {
	doc := parseDoc(t)
	s := New(doc, mustURL(t, "/"), locales(), WithStatic())
	defer s.Close()
	require.NoError(t, s.Boot(context.Background()))

	s.Scroll(42)
	require.True(t, doc.Find(".site-header").HasClass("is-scrolled"))
	require.True(t, s.ToggleMenu())
	require.Equal(t, "true", doc.Find(".menu-toggle").AttrOr("aria-expanded", ""))
	s.NavClick()
	require.False(t, s.Header().MenuOpen)
	require.False(t, doc.Find(".site-header").HasClass("open"))

	require.True(t, s.Submit())
	btn := doc.Find("#contact-form button")
	require.Equal(t, "Enviando...", btn.Text())
	_, disabled := btn.Attr("disabled")
	require.True(t, disabled)
}

func TestRenderWritesDocument(t *testing.T) {
	store, err := portfolio.Embedded()
	require.NoError(t, err)
	s := New(parseDoc(t), mustURL(t, "/project.html?slug=res-alpha&lang=en"), locales(),
		WithPortfolio(store), WithStatic(), WithMeta(DefaultMeta("https://example.com", []string{"a@example.com"})))
	defer s.Close()
	require.NoError(t, s.Boot(context.Background()))
	require.True(t, s.Detail().Found)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, `<html lang="en">`)
	require.Contains(t, out, `<link rel="canonical" href="https://example.com/project.html?slug=res-alpha&amp;lang=en"`)
	require.Contains(t, out, `hreflang="x-default"`)
	require.Contains(t, out, "Residencial Alpha | Portugal Engenharia")
	require.Contains(t, out, `"@type":"CreativeWork"`)
}

func TestApplyHonoursContext(t *testing.T) {
	loader := i18n.LoaderFunc(func(ctx context.Context, lang string) (i18n.Messages, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	s := New(parseDoc(t), mustURL(t, "/"), loader, WithStatic())
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.Apply(ctx, "pt")
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}
