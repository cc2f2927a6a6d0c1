// Package seo builds the head metadata of a localized page: canonical URL, hreflang
// alternates, Open Graph tags and JSON-LD payloads.
package seo

import (
    "net/url"
    "strings"

    "github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
)

// XDefault is the hreflang of the alternate served to unmatched languages.
const XDefault = "x-default"

type OpenGraph struct {
    Title       string
    Description string
    Image       string
    Type        string
    URL         string
    SiteName    string
    Locale      string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
    Href     string
    Hreflang string
}

type Meta struct {
    Title       string
    Description string
    Canonical   string
    OG          OpenGraph
    Alternates  []Alternate
    JSONLD      []string
}

// PageURL returns the absolute URL of page in lang against base. Without a base the
// result is site-relative. Query parameters other than lang are kept; an explicit
// index.html collapses to the root.
func PageURL(base string, page *url.URL, lang string) string {
    p := "/"
    raw := ""
    if page != nil {
        if page.Path != "" {
            p = page.Path
        }
        raw = page.RawQuery
    }
    if links.IsIndex(p) {
        p, raw = "/", ""
    }
    ref := (&url.URL{Path: p, RawQuery: raw}).String()
    href := links.Localize(ref, lang)
    base = strings.TrimRight(base, "/")
    if base == "" {
        return href
    }
    return base + href
}

// Alternates lists the page in every supported language plus x-default, which points at
// the default language.
func Alternates(base string, page *url.URL) []Alternate {
    out := make([]Alternate, 0, len(i18n.Supported())+1)
    for _, lang := range i18n.Supported() {
        out = append(out, Alternate{Href: PageURL(base, page, lang), Hreflang: lang})
    }
    out = append(out, Alternate{Href: PageURL(base, page, i18n.Default), Hreflang: XDefault})
    return out
}

// ogLocales maps site languages to Open Graph locales.
var ogLocales = map[string]string{
    "pt": "pt_BR",
    "en": "en_US",
    "es": "es_ES",
}

// OGLocale returns the Open Graph locale for lang.
func OGLocale(lang string) string {
    return ogLocales[i18n.Resolve(lang)]
}
