package tui

import (
	"strings"

	"github.com/atotto/clipboard"
)

type Option func(*Model)

// WithCopyFunc replaces the clipboard writer, used by tests.
func WithCopyFunc(copyFn func(string) error) Option {
	return func(m *Model) {
		if copyFn != nil {
			m.copyFn = copyFn
		}
	}
}

// WithAnswerStyle selects the glamour style the answer panel renders with.
func WithAnswerStyle(style string) Option {
	return func(m *Model) {
		if strings.TrimSpace(style) != "" {
			m.md = newAnswerRenderer(style)
		}
	}
}

func defaultCopyFunc(text string) error {
	return clipboard.WriteAll(text)
}
