package seo

import (
    "net/url"
    "testing"

    "github.com/stretchr/testify/require"
)

func TestPageURL(t *testing.T) {
    u, err := url.Parse("/project.html?slug=res-alpha&lang=pt")
    require.NoError(t, err)

    require.Equal(t, "/project.html?slug=res-alpha&lang=en", PageURL("", u, "en"))
    require.Equal(t, "https://example.com/project.html?slug=res-alpha&lang=es", PageURL("https://example.com/", u, "es"))

    idx, err := url.Parse("/index.html?lang=en")
    require.NoError(t, err)
    require.Equal(t, "/?lang=en", PageURL("", idx, "en"))
    require.Equal(t, "/?lang=pt", PageURL("", nil, "pt"))
}

func TestAlternates(t *testing.T) {
    u, err := url.Parse("/sobre.html")
    require.NoError(t, err)

    alts := Alternates("https://example.com", u)
    require.Equal(t, []Alternate{
        {Href: "https://example.com/sobre.html?lang=pt", Hreflang: "pt"},
        {Href: "https://example.com/sobre.html?lang=en", Hreflang: "en"},
        {Href: "https://example.com/sobre.html?lang=es", Hreflang: "es"},
        {Href: "https://example.com/sobre.html?lang=pt", Hreflang: XDefault},
    }, alts)
}

func TestOGLocale(t *testing.T) {
    require.Equal(t, "pt_BR", OGLocale("pt"))
    require.Equal(t, "en_US", OGLocale("en"))
    require.Equal(t, "pt_BR", OGLocale("fr"))
}

func TestJSONLD(t *testing.T) {
    org := JSON(Organization("Portugal Engenharia", "https://example.com", "", []string{"a@example.com"}))
    require.JSONEq(t, `{
        "@context":"https://schema.org","@type":"Organization","name":"Portugal Engenharia",
        "url":"https://example.com",
        "contactPoint":[{"@type":"ContactPoint","contactType":"sales","email":"a@example.com"}]
    }`, org)

    crumbs := JSON(BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "/"}, {Name: "Portfolio", Item: "/portfolio.html"}}))
    require.Contains(t, crumbs, `"position":2`)

    p := Project("Infra Gama", "Pavimentação", "", "https://img/c.png", "2022", "Ituiutaba/MG")
    require.Equal(t, "2022", p["dateCreated"])
    require.NotContains(t, p, "url")
}
