package i18n

import (
    "net/url"
    "strings"

    "golang.org/x/text/cases"
    "golang.org/x/text/language"
    "golang.org/x/text/language/display"
)

// Default is the language applied when the URL carries no usable lang.
const Default = "pt"

// Param is the query parameter that carries the active language across pages.
const Param = "lang"

var supported = []string{"pt", "en", "es"}

// Supported returns the supported language codes in switcher order.
func Supported() []string {
    out := make([]string, len(supported))
    copy(out, supported)
    return out
}

// IsSupported reports whether lang is one of the supported codes. Matching is exact.
func IsSupported(lang string) bool {
    for _, l := range supported {
        if l == lang {
            return true
        }
    }
    return false
}

// Resolve collapses lang onto the supported set. Anything else, including regional
// variants such as "en-US" and the empty string, becomes Default.
func Resolve(lang string) string {
    if IsSupported(lang) {
        return lang
    }
    return Default
}

// FromURL resolves the active language from the lang query parameter of u.
func FromURL(u *url.URL) string {
    if u == nil {
        return Default
    }
    return Resolve(u.Query().Get(Param))
}

// FromHref is FromURL for a raw href. Unparseable input resolves to Default.
func FromHref(href string) string {
    u, err := url.Parse(href)
    if err != nil {
        return Default
    }
    return FromURL(u)
}

// DisplayName returns the language's name in that language, title-cased
// ("Português", "English", "Español").
func DisplayName(lang string) string {
    tag, err := language.Parse(lang)
    if err != nil {
        return strings.ToUpper(lang)
    }
    name := display.Self.Name(tag)
    if name == "" {
        return strings.ToUpper(lang)
    }
    return cases.Title(tag).String(name)
}
