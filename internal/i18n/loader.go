package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrBundleNotFound is returned when a language's bundle cannot be obtained.
var ErrBundleNotFound = errors.New("i18n: bundle not found")

const maxBundleSize = 2 << 20

// Loader fetches the bundle for one language.
type Loader interface {
	Load(ctx context.Context, lang string) (Messages, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, lang string) (Messages, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, lang string) (Messages, error) {
	return f(ctx, lang)
}

// FSLoader reads <lang>.json from a filesystem.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader returns a loader reading bundles from the root of fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// DirLoader returns a loader reading bundles from dir on disk.
func DirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

// Load implements Loader.
func (l *FSLoader) Load(ctx context.Context, lang string) (Messages, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsSupported(lang) {
		return nil, fmt.Errorf("%w: %q", ErrBundleNotFound, lang)
	}
	raw, err := fs.ReadFile(l.fsys, lang+".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, lang)
		}
		return nil, fmt.Errorf("i18n: read %s: %w", lang, err)
	}
	return Parse(raw)
}

// HTTPLoader requests <base>/<lang>.json. Any non-2xx answer is ErrBundleNotFound.
type HTTPLoader struct {
	base   string
	client *http.Client
}

// NewHTTPLoader builds an HTTPLoader. A nil client gets a 5s timeout client.
func NewHTTPLoader(base string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPLoader{base: strings.TrimRight(strings.TrimSpace(base), "/"), client: client}
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context, lang string) (Messages, error) {
	if !IsSupported(lang) {
		return nil, fmt.Errorf("%w: %q", ErrBundleNotFound, lang)
	}
	endpoint, err := url.JoinPath(l.base, lang+".json")
	if err != nil {
		return nil, fmt.Errorf("i18n: bundle url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrBundleNotFound, lang, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %d", ErrBundleNotFound, lang, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize))
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", lang, err)
	}
	return Parse(raw)
}

// Catalog holds every supported bundle in memory after a single preload.
type Catalog struct {
	bundles map[string]Messages
}

// Preload loads all supported languages concurrently. Only the default language is
// mandatory; a missing bundle for another language surfaces later as ErrBundleNotFound.
func Preload(ctx context.Context, loader Loader) (*Catalog, error) {
	c := &Catalog{bundles: map[string]Messages{}}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, lang := range supported {
		g.Go(func() error {
			m, err := loader.Load(gctx, lang)
			if err != nil {
				if errors.Is(err, ErrBundleNotFound) && lang != Default {
					return nil
				}
				return fmt.Errorf("preload %s: %w", lang, err)
			}
			mu.Lock()
			c.bundles[lang] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load implements Loader from memory.
func (c *Catalog) Load(ctx context.Context, lang string) (Messages, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, ok := c.bundles[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, lang)
	}
	return m, nil
}

// Languages lists the languages that loaded, in switcher order.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.bundles))
	for _, l := range supported {
		if _, ok := c.bundles[l]; ok {
			out = append(out, l)
		}
	}
	return out
}
