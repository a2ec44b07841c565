package term

import (
	"github.com/charmbracelet/glamour"
)

// Renderer renders markdown for terminal display. It implements
// domain.MarkdownRenderer.
type Renderer struct {
	renderer *glamour.TermRenderer
}

// NewRenderer creates a Renderer with automatic light/dark styling and a
// readable line width.
func NewRenderer() (*Renderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r}, nil
}

// Render renders the markdown document.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
