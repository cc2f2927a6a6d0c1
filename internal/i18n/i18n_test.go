package i18n

import (
    "net/url"
    "testing"
)

func TestResolveCollapsesToDefault(t *testing.T) {
    cases := []string{"", "fr", "EN", "en-US", "pt-BR", " pt", "../pt", "es;"}
    for _, in := range cases {
        if got := Resolve(in); got != Default {
            t.Fatalf("Resolve(%q) = %q, want %q", in, got, Default)
        }
    }
    for _, in := range []string{"pt", "en", "es"} {
        if got := Resolve(in); got != in {
            t.Fatalf("Resolve(%q) = %q", in, got)
        }
    }
}

func TestFromURLReadsLangParam(t *testing.T) {
    u, _ := url.Parse("https://example.com/sobre.html?lang=es&x=1")
    if got := FromURL(u); got != "es" {
        t.Fatalf("expected es, got %s", got)
    }
    u, _ = url.Parse("https://example.com/?lang=de")
    if got := FromURL(u); got != Default {
        t.Fatalf("expected default, got %s", got)
    }
    if got := FromURL(nil); got != Default {
        t.Fatalf("expected default for nil url, got %s", got)
    }
    if got := FromHref("%zz"); got != Default {
        t.Fatalf("expected default for malformed href, got %s", got)
    }
}

func TestDisplayName(t *testing.T) {
    want := map[string]string{"pt": "Português", "en": "English", "es": "Español"}
    for lang, name := range want {
        if got := DisplayName(lang); got != name {
            t.Fatalf("DisplayName(%s) = %q, want %q", lang, got, name)
        }
    }
}

func TestSupportedIsACopy(t *testing.T) {
    s := Supported()
    s[0] = "xx"
    if !IsSupported("pt") || IsSupported("xx") {
        t.Fatalf("Supported must not expose internal slice")
    }
}
