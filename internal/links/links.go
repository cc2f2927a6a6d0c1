// Package links keeps the active language attached to internal navigation.
package links

import (
	"net/url"
	"path"
	"strings"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
)

// Root is the canonical reference to the home page.
const Root = "./"

// Localize returns href with the lang query parameter set to lang. The parameter is
// replaced in place, never duplicated, and the other parameters keep their order.
// Relative hrefs stay relative; hrefs that do not parse are returned unchanged.
func Localize(href, lang string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	u.RawQuery = setParam(u.RawQuery, i18n.Param, lang)
	return u.String()
}

func setParam(raw, key, value string) string {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	out := make([]string, 0, 4)
	found := false
	for _, p := range strings.Split(raw, "&") {
		if p == "" {
			continue
		}
		k := p
		if i := strings.IndexByte(p, '='); i >= 0 {
			k = p[:i]
		}
		if uk, err := url.QueryUnescape(k); err == nil && uk == key {
			if !found {
				out = append(out, pair)
				found = true
			}
			continue
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, pair)
	}
	return strings.Join(out, "&")
}

// IsExternal reports whether href leaves the site (has a scheme or a host).
func IsExternal(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Host != ""
}

// IsPage reports whether href is an internal page link: its path ends in .html or it
// points at the root.
func IsPage(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return false
	}
	p := u.Path
	switch p {
	case "/", "./", ".":
		return true
	}
	return strings.HasSuffix(strings.ToLower(p), ".html")
}

// IsIndex reports whether href names the index file explicitly ("index.html",
// "/index.html", "./index.html/").
func IsIndex(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Scheme != "" || u.Host != "" {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return path.Base(p) == "index.html"
}

// NormalizeIndex maps an explicit index reference to the canonical root, localized to
// lang. Other hrefs are only localized.
func NormalizeIndex(href, lang string) string {
	if IsIndex(href) {
		return Localize(Root, lang)
	}
	return Localize(href, lang)
}
