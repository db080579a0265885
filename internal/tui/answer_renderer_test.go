package tui

import (
	"strings"
	"testing"
)

func TestAnswerRendererEmptyAnswer(t *testing.T) {
	r := newAnswerRenderer("")
	if got := r.render("   ", 80); got != "" {
		t.Fatalf("render() = %q, want empty for blank answer", got)
	}
}

func TestAnswerRendererDefaultsStyle(t *testing.T) {
	r := newAnswerRenderer("  ")
	if r.style != defaultAnswerStyle {
		t.Fatalf("style = %q, want %q", r.style, defaultAnswerStyle)
	}
}

func TestAnswerRendererKeepsAnswerText(t *testing.T) {
	r := newAnswerRenderer(defaultAnswerStyle)
	got := r.render("**An example domain.**", 80)
	if !strings.Contains(got, "An example domain.") {
		t.Fatalf("render() = %q, want answer text preserved", got)
	}
}

func TestAnswerRendererClampsNarrowWidths(t *testing.T) {
	r := newAnswerRenderer(defaultAnswerStyle)
	if got := r.render("hello", 5); got == "" {
		t.Fatal("render() = empty, want rendered answer")
	}
	if r.width != minAnswerWrap {
		t.Fatalf("wrap width = %d, want clamped to %d", r.width, minAnswerWrap)
	}
}

func TestAnswerRendererReusesRendererAtSameWidth(t *testing.T) {
	r := newAnswerRenderer(defaultAnswerStyle)
	_ = r.render("first", 80)
	first := r.renderer
	if first == nil {
		t.Fatal("expected renderer to be built")
	}
	_ = r.render("second", 80)
	if r.renderer != first {
		t.Fatal("expected renderer reuse at unchanged width")
	}
	_ = r.render("third", 120)
	if r.renderer == first {
		t.Fatal("expected renderer rebuild after width change")
	}
}

func TestWithAnswerStyleOverridesRenderer(t *testing.T) {
	m := NewModel(&fakeService{}, WithAnswerStyle("notty"))
	if m.md.style != "notty" {
		t.Fatalf("style = %q, want notty", m.md.style)
	}

	kept := NewModel(&fakeService{}, WithAnswerStyle("  "))
	if kept.md.style != defaultAnswerStyle {
		t.Fatalf("style = %q, want default retained for blank option", kept.md.style)
	}
}
