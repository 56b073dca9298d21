// Package render turns an article's markdown body into a standalone HTML
// document for local preview.
package render

import (
	"bytes"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrRender wraps goldmark conversion failures.
var ErrRender = fmt.Errorf("markdown rendering failed")

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Renderer converts markdown to a previewable HTML page.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GFM extensions and syntax highlighting.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(), // Treat newlines as <br>
			goldmarkhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Document renders the markdown body into a full HTML5 page with the given
// title.
func (r *Renderer) Document(title, markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(title), buf.String()), nil
}
