package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/unchartedsh/site/internal/model"
)

// Table of contents range, matching what the post page sidebar shows.
const (
	minHeadingDepth = 2
	maxHeadingDepth = 6
)

type Parser struct {
	md goldmark.Markdown
}

type Document struct {
	HTML     []byte
	Headings []model.Heading
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{
				Formats: []frontmatter.Format{frontmatter.YAML},
			},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Render converts a raw content file to HTML and collects its headings.
// A leading front-matter block is consumed and not rendered.
func (p *Parser) Render(source []byte) (*Document, error) {
	source = bytes.TrimPrefix(source, []byte("\xef\xbb\xbf"))
	ctx := parser.NewContext()
	root := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	var buf bytes.Buffer
	err := p.md.Renderer().Render(&buf, source, root)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &Document{
		HTML:     buf.Bytes(),
		Headings: collectHeadings(root, source),
	}, nil
}

func collectHeadings(root ast.Node, source []byte) []model.Heading {
	var headings []model.Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < minHeadingDepth || h.Level > maxHeadingDepth {
			return ast.WalkSkipChildren, nil
		}

		var id string
		if v, ok := h.AttributeString("id"); ok {
			switch v := v.(type) {
			case []byte:
				id = string(v)
			case string:
				id = v
			}
		}

		headings = append(headings, model.Heading{
			ID:    id,
			Text:  string(bytes.TrimSpace(inlineText(h, source))),
			Depth: h.Level,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func inlineText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(c.Value)
		default:
			buf.Write(inlineText(c, source))
		}
	}
	return buf.Bytes()
}
