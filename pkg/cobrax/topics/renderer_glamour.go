package topics

import (
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// GlamourRenderer renders markdown topics with glamour. Other formats are
// returned unchanged.
type GlamourRenderer struct {
	Style   string // "auto", a glamour style name or a path to a style file
	Width   int    // 0 keeps glamour's default wrapping
	NoColor bool   // forces the notty style

	once sync.Once
	term *glamour.TermRenderer
}

// NewGlamourRenderer returns a renderer that picks its style from the
// terminal.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch {
	case r.NoColor:
		options = append(options, glamour.WithStylePath(styles.NoTTYStyle))
	case r.Style != "" && r.Style != "auto":
		options = append(options, glamour.WithStylePath(r.Style))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}

// Render converts markdown to terminal output, falling back to the raw
// content when glamour fails.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	r.once.Do(func() {
		term, err := glamour.NewTermRenderer(r.options()...)
		if err == nil {
			r.term = term
		}
	})
	if r.term == nil {
		return content
	}

	rendered, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
