package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
)

func TestLabelsPreferBundle(t *testing.T) {
	m := i18n.Messages{"nav": map[string]any{"home": "Início", "about": "Quem somos"}}
	got := Labels("pt", m)
	require.Equal(t, "Início", got["home"])
	require.Equal(t, "Quem somos", got["about"])
	_, ok := got["contact"]
	require.False(t, ok, "bundle nav section replaces the table as a whole")
}

func TestLabelsFallbackTable(t *testing.T) {
	got := Labels("es", i18n.Messages{})
	require.Equal(t, map[string]string{
		"home": "Inicio", "about": "Sobre", "portfolio": "Portafolio", "contact": "Contacto",
	}, got)

	got = Labels("xx", nil)
	require.Equal(t, "Portfólio", got["portfolio"])
}

func TestBuild(t *testing.T) {
	items := Build("en", "/sobre.html", i18n.Messages{})
	require.Len(t, items, 4)
	require.Equal(t, "./?lang=en", items[0].Href)
	require.Equal(t, "./sobre.html?lang=en", items[1].Href)
	require.Equal(t, "About", items[1].Label)
	require.True(t, items[1].Active)
	require.False(t, items[0].Active)

	items = Build("pt", "/index.html", nil)
	require.True(t, items[0].Active)
}

func TestRoute(t *testing.T) {
	require.Equal(t, "./contato.html?lang=es", Route("contact", "es"))
	require.Equal(t, "", Route("blog", "es"))
}
