package nav

import (
    "path"
    "strings"

    "github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/links"
)

// Item is one of the fixed navigation slots.
type Item struct {
    Key  string // slot name, also the data-nav attribute value
    Path string // canonical page path, relative to the site root
}

// RenderedItem is a navigation slot resolved for one language and page.
type RenderedItem struct {
    Key    string
    Href   string
    Label  string
    Active bool
}

// Main is the primary navigation: home, about, portfolio, contact.
var Main = []Item{
    {Key: "home", Path: "./"},
    {Key: "about", Path: "./sobre.html"},
    {Key: "portfolio", Path: "./portfolio.html"},
    {Key: "contact", Path: "./contato.html"},
}

// fallbackLabels is used when a bundle carries no nav section.
var fallbackLabels = map[string]map[string]string{
    "pt": {"home": "Home", "about": "Sobre", "portfolio": "Portfólio", "contact": "Contato"},
    "en": {"home": "Home", "about": "About", "portfolio": "Portfolio", "contact": "Contact"},
    "es": {"home": "Inicio", "about": "Sobre", "portfolio": "Portafolio", "contact": "Contacto"},
}

// Labels returns the slot labels for lang. The bundle's nav section wins as a whole;
// without one the built-in table for lang is used.
func Labels(lang string, messages i18n.Messages) map[string]string {
    if sec, ok := messages.Section("nav"); ok {
        out := make(map[string]string, len(Main))
        for _, it := range Main {
            if v, ok := sec.String(it.Key); ok && v != "" {
                out[it.Key] = v
            }
        }
        return out
    }
    fb := fallbackLabels[i18n.Resolve(lang)]
    out := make(map[string]string, len(fb))
    for k, v := range fb {
        out[k] = v
    }
    return out
}

// Route returns the localized href for a slot key, or "" for an unknown key.
func Route(key, lang string) string {
    for _, it := range Main {
        if it.Key == key {
            return links.Localize(it.Path, lang)
        }
    }
    return ""
}

// Build renders the slots for lang with the active flag set from the current path.
func Build(lang, currentPath string, messages i18n.Messages) []RenderedItem {
    labels := Labels(lang, messages)
    items := make([]RenderedItem, 0, len(Main))
    for _, it := range Main {
        items = append(items, RenderedItem{
            Key:    it.Key,
            Href:   links.Localize(it.Path, lang),
            Label:  labels[it.Key],
            Active: isActive(it.Path, currentPath),
        })
    }
    return items
}

func isActive(itemPath, currentPath string) bool {
    cur := normalize(currentPath)
    return normalize(itemPath) == cur
}

// normalize maps "./", "/", "", "index.html" to "/" and "./x.html" to "/x.html".
func normalize(p string) string {
    p = strings.TrimSpace(p)
    if i := strings.IndexAny(p, "?#"); i >= 0 {
        p = p[:i]
    }
    p = strings.TrimPrefix(p, ".")
    if !strings.HasPrefix(p, "/") {
        p = "/" + p
    }
    p = path.Clean(p)
    if path.Base(p) == "index.html" {
        p = path.Dir(p)
    }
    return p
}
