// Package site runs the boot sequence of one page: resolve the language, load its bundle
// and apply it to the page document.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/carousel"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/dom"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/header"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
)

// BootFailureMessage is the alert shown when a page cannot load its bundle.
const BootFailureMessage = "Falha ao carregar o site. Verifique os arquivos de tradução."

var (
	// ErrSuperseded is returned by Apply when a later Apply started before it finished.
	ErrSuperseded = errors.New("site: language application superseded")
	// ErrClosed is returned by Apply after Close.
	ErrClosed = errors.New("site: session closed")
)

// Session owns one page document and the state applied to it. Apply may be called
// concurrently; the most recently requested language wins.
type Session struct {
	loader   i18n.Loader
	store    *portfolio.Store
	logger   *zap.Logger
	now      func() time.Time
	interval time.Duration
	static   bool
	meta     MetaFunc

	mu         sync.Mutex
	doc        *goquery.Document
	page       *url.URL
	lang       string
	messages   i18n.Messages
	gen        uint64
	cancelLoad context.CancelFunc
	carousel   *carousel.Controller
	release    func()
	header     header.State
	detail     portfolio.Detail
	sending    string
	closed     bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPortfolio enables the portfolio grid and project detail sections.
func WithPortfolio(store *portfolio.Store) Option {
	return func(s *Session) { s.store = store }
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCarouselInterval overrides carousel.DefaultInterval.
func WithCarouselInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// WithStatic renders without mounting timers, for pages written once and discarded.
func WithStatic() Option {
	return func(s *Session) { s.static = true }
}

// WithMeta sets the builder of the page head metadata.
func WithMeta(fn MetaFunc) Option {
	return func(s *Session) { s.meta = fn }
}

// New returns a session over doc, the page found at page.
func New(doc *goquery.Document, page *url.URL, loader i18n.Loader, opts ...Option) *Session {
	if page == nil {
		page = &url.URL{Path: "/"}
	}
	s := &Session{
		loader:   loader,
		logger:   zap.NewNop(),
		now:      time.Now,
		interval: carousel.DefaultInterval,
		doc:      doc,
		page:     cloneURL(page),
		lang:     i18n.FromURL(page),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Boot applies the language named by the page URL.
func (s *Session) Boot(ctx context.Context) error {
	return s.Apply(ctx, i18n.FromURL(s.URL()))
}

// Apply switches the page to lang: it loads the bundle and re-runs every section. A
// call started later cancels the load of any call still in flight, and a load that
// finishes after a later call started is discarded with ErrSuperseded.
func (s *Session) Apply(ctx context.Context, lang string) error {
	lang = i18n.Resolve(lang)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.gen++
	gen := s.gen
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	s.mu.Unlock()

	messages, err := s.loader.Load(loadCtx, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if gen != s.gen {
		s.logger.Debug("discarding superseded bundle", zap.String("lang", lang))
		return ErrSuperseded
	}
	s.cancelLoad = nil
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		s.logger.Error("load bundle", zap.String("lang", lang), zap.Error(err))
		return fmt.Errorf("site: load %s bundle: %w", lang, err)
	}

	s.lang = lang
	s.messages = messages
	s.page.RawQuery = pageQuery(s.page, lang)
	s.applyLocked()
	return nil
}

func (s *Session) applyLocked() {
	doc, lang, messages := s.doc, s.lang, s.messages
	q := s.page.Query()

	dom.SetLang(doc, lang)
	dom.FillTexts(doc, messages)
	dom.ApplyNav(doc, lang, s.page.Path, messages)
	dom.LocalizeLinks(doc, lang)
	dom.ApplyLangSwitch(doc, lang, s.page)
	dom.ApplyHeader(doc, s.header)
	if s.store != nil {
		dom.ApplyPortfolio(doc, s.store, q.Get("tag"), lang, messages)
		s.detail = dom.ApplyProjectDetail(doc, s.store, q.Get("slug"))
	}
	s.sending = dom.ApplyContactForm(doc, messages)
	s.mountCarouselLocked()
	dom.SetYear(doc, s.now().Year())
	if s.meta != nil {
		dom.ApplyMeta(doc, s.meta(Page{
			URL:      cloneURL(s.page),
			Lang:     lang,
			Title:    doc.Find("title").First().Text(),
			Messages: messages,
			Detail:   s.detail,
		}))
	}
}

// mountCarouselLocked releases the previous carousel timer and mounts a new one.
func (s *Session) mountCarouselLocked() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.carousel = carousel.New(dom.CarouselSlides(s.doc), nil)
	dom.ApplyCarousel(s.doc, s.carousel.Active(), s.interval)
	if !s.static {
		s.release = s.carousel.Mount(context.Background(), s.interval)
	}
}

// pageQuery returns the page query with lang set, as links.Localize would write it.
func pageQuery(page *url.URL, lang string) string {
	u, err := url.Parse(links.Localize("?"+page.RawQuery, lang))
	if err != nil {
		return page.RawQuery
	}
	return u.RawQuery
}

// Lang returns the active language.
func (s *Session) Lang() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// URL returns the page URL carrying the active language.
func (s *Session) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneURL(s.page)
}

// Messages returns the bundle currently applied, nil before the first Apply.
func (s *Session) Messages() i18n.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages
}

// Detail returns the project detail view of the last Apply.
func (s *Session) Detail() portfolio.Detail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

// Header returns the header state.
func (s *Session) Header() header.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.header
}

// Scroll updates the header from the vertical scroll position.
func (s *Session) Scroll(y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header.OnScroll(y)
	dom.ApplyHeader(s.doc, s.header)
}

// ToggleMenu flips the mobile menu and returns whether it is open.
func (s *Session) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := s.header.ToggleMenu()
	dom.ApplyHeader(s.doc, s.header)
	return open
}

// NavClick closes the mobile menu after a click inside the mobile panel.
func (s *Session) NavClick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header.Navigate()
	dom.ApplyHeader(s.doc, s.header)
}

// Submit puts the contact form into its pending state. It reports false when the page
// has no contact form.
func (s *Session) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending == "" {
		return false
	}
	dom.ApplySubmitState(s.doc, dom.Submitting(s.sending))
	return true
}

// Slide returns the active carousel slide.
func (s *Session) Slide() int {
	s.mu.Lock()
	c := s.carousel
	s.mu.Unlock()
	if c == nil {
		return 0
	}
	return c.Current()
}

// Render writes the page HTML with the current carousel slide marked active.
func (s *Session) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carousel != nil {
		dom.ApplyCarousel(s.doc, s.carousel.Active(), s.interval)
	}
	return goquery.Render(w, s.doc.Selection)
}

// Close stops the carousel and any in-flight load. Later Apply calls fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	return &c
}
