package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_SkipsFrontmatter(t *testing.T) {
	p := NewParser()
	doc, err := p.Render([]byte("---\ntitle: Hidden Title\n---\n# Visible\n\nHello world\n"))
	require.NoError(t, err)

	html := string(doc.HTML)
	require.NotContains(t, html, "Hidden Title")
	require.Contains(t, html, "Visible")
	require.Contains(t, html, "Hello world")
}

func TestRender_CollectsHeadingsWithRenderedIDs(t *testing.T) {
	p := NewParser()
	src := []byte("# Top\n\n## Getting Started\n\ntext\n\n### The `config` file\n\n####### not a heading\n")
	doc, err := p.Render(src)
	require.NoError(t, err)

	require.Len(t, doc.Headings, 2)
	require.Equal(t, 2, doc.Headings[0].Depth)
	require.Equal(t, "Getting Started", doc.Headings[0].Text)
	require.NotEmpty(t, doc.Headings[0].ID)
	require.Contains(t, string(doc.HTML), `id="`+doc.Headings[0].ID+`"`)

	require.Equal(t, 3, doc.Headings[1].Depth)
	require.Equal(t, "The config file", doc.Headings[1].Text)
}

func TestHeadings_EmptyBody(t *testing.T) {
	doc, err := NewParser().Render([]byte("just a paragraph"))
	require.NoError(t, err)
	require.Empty(t, doc.Headings)
}

func TestHeadings_IgnoresCodeBlocks(t *testing.T) {
	src := []byte("```\n## not a heading\n```\n\n## Real\n")
	doc, err := NewParser().Render(src)
	require.NoError(t, err)
	headings := doc.Headings
	require.Len(t, headings, 1)
	require.Equal(t, "Real", headings[0].Text)
}

func TestRender_ByteOrderMarkBeforeFrontMatter(t *testing.T) {
	doc, err := NewParser().Render([]byte("\ufeff---\ntitle: A\n---\n\n## Intro\n"))
	require.NoError(t, err)
	require.NotContains(t, string(doc.HTML), "title: A")
	require.Len(t, doc.Headings, 1)
}
