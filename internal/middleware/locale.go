package middleware

import (
	"net/http"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
)

// Locale resolves the `lang` query parameter onto the supported set, stores it in the
// request context and surfaces it as Content-Language.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.FromURL(r.URL)
		w.Header().Set("Content-Language", lang)
		next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
	})
}

// CanonicalIndex redirects explicit index references ("/index.html") to the site root,
// keeping the query and the active language.
func CanonicalIndex(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) && links.IsIndex(r.URL.Path) {
			target := "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, links.Localize(target, i18n.FromURL(r.URL)), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
