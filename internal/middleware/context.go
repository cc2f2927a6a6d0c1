package middleware

import (
	"context"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyLang ctxKey = "lang"
)

// WithLang stores the resolved page language in context
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// Lang returns the resolved page language, or i18n.Default when Locale did not run.
func Lang(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyLang).(string); ok && v != "" {
		return v
	}
	return i18n.Default
}
