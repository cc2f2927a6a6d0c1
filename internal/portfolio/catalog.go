package portfolio

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.md
var catalogFS embed.FS

// catalogDir is the directory inside catalogFS holding one markdown file per project.
const catalogDir = "catalog"

type frontMatter struct {
	Slug     string `yaml:"slug"`
	Tag      string `yaml:"tag"`
	Cover    string `yaml:"cover"`
	Title    string `yaml:"title"`
	Summary  string `yaml:"summary"`
	Client   string `yaml:"client"`
	Location string `yaml:"location"`
	Year     string `yaml:"year"`
	Scope    string `yaml:"scope"`
}

var (
	markdown   = goldmark.New()
	bodyPolicy = newBodyPolicy()
)

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Embedded returns the store built from the catalog compiled into the binary.
func Embedded() (*Store, error) {
	sub, err := fs.Sub(catalogFS, catalogDir)
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads every *.md file at the root of fsys. File name order is declaration order.
func Load(fsys fs.FS) (*Store, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("portfolio: read catalog: %w", err)
	}
	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("portfolio: read %s: %w", e.Name(), err)
		}
		p, err := parseProject(e.Name(), data)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return NewStore(projects)
}

func parseProject(name string, data []byte) (Project, error) {
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Project{}, fmt.Errorf("portfolio: parse front matter %s: %w", name, err)
		}
	}
	html, err := renderBody(body)
	if err != nil {
		return Project{}, fmt.Errorf("portfolio: render %s: %w", name, err)
	}
	slug := strings.TrimSpace(front.Slug)
	if slug == "" {
		slug = strings.TrimSuffix(name, path.Ext(name))
	}
	return Project{
		Slug:     slug,
		Tag:      strings.TrimSpace(front.Tag),
		Cover:    strings.TrimSpace(front.Cover),
		Title:    strings.TrimSpace(front.Title),
		Summary:  strings.TrimSpace(front.Summary),
		Client:   strings.TrimSpace(front.Client),
		Location: strings.TrimSpace(front.Location),
		Year:     strings.TrimSpace(front.Year),
		Scope:    strings.TrimSpace(front.Scope),
		Body:     html,
	}, nil
}

// renderBody converts markdown to HTML and strips anything outside the body policy.
func renderBody(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(bodyPolicy.Sanitize(buf.String())), nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
