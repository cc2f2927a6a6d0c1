package seo

import (
    "encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
    b, err := json.Marshal(v)
    if err != nil {
        return ""
    }
    return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string, emails []string) map[string]any {
    m := map[string]any{
        "@context": "https://schema.org",
        "@type":    "Organization",
        "name":     name,
    }
    if url != "" { m["url"] = url }
    if logoURL != "" { m["logo"] = logoURL }
    if len(emails) > 0 {
        points := make([]map[string]any, 0, len(emails))
        for _, e := range emails {
            points = append(points, map[string]any{
                "@type":       "ContactPoint",
                "contactType": "sales",
                "email":       e,
            })
        }
        m["contactPoint"] = points
    }
    return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
    Name string
    Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
    el := make([]map[string]any, 0, len(items))
    for i, it := range items {
        el = append(el, map[string]any{
            "@type":    "ListItem",
            "position": i + 1,
            "name":     it.Name,
            "item":     it.Item,
        })
    }
    return map[string]any{
        "@context":        "https://schema.org",
        "@type":           "BreadcrumbList",
        "itemListElement": el,
    }
}

// Project returns a CreativeWork schema for a portfolio project.
func Project(name, description, url, imageURL, year, location string) map[string]any {
    m := map[string]any{
        "@context":    "https://schema.org",
        "@type":       "CreativeWork",
        "name":        name,
        "description": description,
    }
    if url != "" { m["url"] = url }
    if imageURL != "" { m["image"] = imageURL }
    if year != "" { m["dateCreated"] = year }
    if location != "" { m["locationCreated"] = map[string]any{"@type": "Place", "name": location} }
    return m
}
