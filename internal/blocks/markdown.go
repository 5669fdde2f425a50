package blocks

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts block markdown into HTML.
type Renderer interface {
	Render(markdown []byte) ([]byte, error)
}

// GoldmarkRenderer renders with GFM extensions and auto heading IDs. It is
// stateless and safe for concurrent use.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
}

// NewGoldmarkRenderer constructs the default block renderer.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render implements Renderer.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
