package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/httpx"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/observability"
)

// Bundles serves the translation bundles at /{lang}.json for client-side switching.
func Bundles(loader i18n.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := strings.ToLower(chi.URLParam(r, "lang"))
		if !i18n.IsSupported(lang) {
			httpx.WriteError(w, http.StatusNotFound, "Bundle not found")
			return
		}
		messages, err := loader.Load(r.Context(), lang)
		if err != nil {
			if errors.Is(err, i18n.ErrBundleNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Bundle not found")
				return
			}
			observability.FromContext(r.Context()).Error("load bundle", zap.String("lang", lang), zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		httpx.WriteJSON(w, http.StatusOK, messages)
	}
}

// Healthz answers liveness probes.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
