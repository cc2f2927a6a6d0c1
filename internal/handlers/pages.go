package handlers

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/dom"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	mw "github.com/fernandokaraka/portugal-engenharia-novo/internal/middleware"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/observability"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/site"
)

const indexPage = "index.html"

// Pages serves the HTML pages of the public directory, each one booted in its own
// session so the response already carries the requested language.
type Pages struct {
	files    fs.FS
	loader   i18n.Loader
	store    *portfolio.Store
	meta     site.MetaFunc
	interval time.Duration
}

// PagesOption configures Pages.
type PagesOption func(*Pages)

// WithPortfolio fills the portfolio grid and the project detail page from store.
func WithPortfolio(store *portfolio.Store) PagesOption {
	return func(p *Pages) { p.store = store }
}

// WithMeta sets the head metadata builder.
func WithMeta(fn site.MetaFunc) PagesOption {
	return func(p *Pages) { p.meta = fn }
}

// WithCarouselInterval sets the data-interval advertised on the carousel.
func WithCarouselInterval(d time.Duration) PagesOption {
	return func(p *Pages) { p.interval = d }
}

// NewPages serves the *.html files at the root of files with bundles from loader.
func NewPages(files fs.FS, loader i18n.Loader, opts ...PagesOption) *Pages {
	p := &Pages{files: files, loader: loader}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ServeHTTP renders the page named by the request path. "/" is index.html. A bundle
// that cannot be loaded leaves the page untranslated behind an alert, with status 500.
func (p *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	name, ok := pageName(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	raw, err := fs.ReadFile(p.files, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		logger.Error("read page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		logger.Error("parse page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	opts := []site.Option{site.WithLogger(logger), site.WithStatic()}
	if p.store != nil {
		opts = append(opts, site.WithPortfolio(p.store))
	}
	if p.meta != nil {
		opts = append(opts, site.WithMeta(p.meta))
	}
	if p.interval > 0 {
		opts = append(opts, site.WithCarouselInterval(p.interval))
	}
	page := &url.URL{Path: r.URL.Path, RawQuery: r.URL.RawQuery}
	sess := site.New(doc, page, p.loader, opts...)
	defer sess.Close()

	status := http.StatusOK
	if err := sess.Boot(r.Context()); err != nil {
		logger.Error("boot page",
			zap.String("page", name),
			zap.String("resolved_lang", mw.Lang(r.Context())),
			zap.Error(err),
		)
		dom.ShowAlert(doc, site.BootFailureMessage)
		status = http.StatusInternalServerError
	}

	var buf bytes.Buffer
	if err := sess.Render(&buf); err != nil {
		logger.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// pageName maps a request path onto a file at the root of the public directory.
func pageName(p string) (string, bool) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return indexPage, true
	}
	name := strings.TrimPrefix(clean, "/")
	if !strings.HasSuffix(name, ".html") || strings.Contains(name, "/") || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
