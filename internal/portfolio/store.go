// Package portfolio is the read-only project catalog: listing by tag, lookup by slug
// and the card/detail views.
package portfolio

import (
	"fmt"
)

// AllTag is the wildcard tag selecting every project.
const AllTag = "todos"

// Project is one portfolio entry. Body is sanitized HTML.
type Project struct {
	Slug     string `json:"slug"`
	Tag      string `json:"tag"`
	Cover    string `json:"cover"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Client   string `json:"client"`
	Location string `json:"location"`
	Year     string `json:"year"`
	Scope    string `json:"scope"`
	Body     string `json:"body"`
}

// Store holds the projects in declaration order. It is immutable after construction.
type Store struct {
	projects []Project
	bySlug   map[string]int
}

// NewStore validates and indexes projects. Slugs must be non-empty and unique.
func NewStore(projects []Project) (*Store, error) {
	s := &Store{
		projects: make([]Project, len(projects)),
		bySlug:   make(map[string]int, len(projects)),
	}
	copy(s.projects, projects)
	for i, p := range s.projects {
		if p.Slug == "" {
			return nil, fmt.Errorf("portfolio: project %d has no slug", i)
		}
		if _, dup := s.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("portfolio: duplicate slug %q", p.Slug)
		}
		s.bySlug[p.Slug] = i
	}
	return s, nil
}

// All returns every project.
func (s *Store) All() []Project {
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// ListByTag returns the projects tagged tag, or all of them for AllTag and "".
func (s *Store) ListByTag(tag string) []Project {
	if tag == AllTag || tag == "" {
		return s.All()
	}
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.Tag == tag {
			out = append(out, p)
		}
	}
	return out
}

// Find looks a project up by slug.
func (s *Store) Find(slug string) (Project, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return Project{}, false
	}
	return s.projects[i], true
}

// Tags returns the distinct tags in first-seen order, preceded by AllTag.
func (s *Store) Tags() []string {
	out := []string{AllTag}
	seen := map[string]bool{AllTag: true}
	for _, p := range s.projects {
		if p.Tag == "" || seen[p.Tag] {
			continue
		}
		seen[p.Tag] = true
		out = append(out, p.Tag)
	}
	return out
}
