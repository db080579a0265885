package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// defaultAnswerStyle is the glamour style the answer panel renders with.
const defaultAnswerStyle = "dark"

// minAnswerWrap is the narrowest wrap width the answer panel renders at;
// answers wrapped tighter than this stop being readable.
const minAnswerWrap = 24

// answerRenderer turns a submission's markdown answer into ANSI-styled text
// for the answer panel, rebuilding the glamour renderer only when the wrap
// width changes.
type answerRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// newAnswerRenderer builds a renderer for one glamour style name.
func newAnswerRenderer(style string) *answerRenderer {
	if strings.TrimSpace(style) == "" {
		style = defaultAnswerStyle
	}
	return &answerRenderer{style: style}
}

// render converts one answer into terminal text wrapped at width. Rendering
// failures fall back to the raw answer so a resolved result is never lost.
func (r *answerRenderer) render(answer string, width int) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ""
	}

	wrapWidth := width
	if wrapWidth < minAnswerWrap {
		wrapWidth = minAnswerWrap
	}

	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return answer
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(answer)
	if err != nil {
		return answer
	}
	return strings.TrimRight(rendered, "\n")
}
