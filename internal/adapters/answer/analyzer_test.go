package answer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) FetchText(_ context.Context, pageURL string) (string, error) {
	f.calls = append(f.calls, pageURL)
	if err, ok := f.errs[pageURL]; ok {
		return "", err
	}
	return f.pages[pageURL], nil
}

type fakeGenerator struct {
	prompt string
	answer string
	err    error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.answer, g.err
}

func TestAnalyzerCombinesPagesIntoPrompt(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://a.example": "alpha text",
		"https://b.example": "beta text",
	}}
	gen := &fakeGenerator{answer: "42"}
	a := NewAnalyzer(fetcher, gen)

	got, err := a.Answer(context.Background(), []string{"https://a.example", "https://b.example"}, "What is the answer?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "42" {
		t.Errorf("answer = %q, want %q", got, "42")
	}
	for _, want := range []string{
		"Content from https://a.example:\nalpha text",
		"Content from https://b.example:\nbeta text",
		"Question: What is the answer?",
	} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q\nprompt: %s", want, gen.prompt)
		}
	}
}

func TestAnalyzerSkipsUnreachablePages(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{"https://ok.example": "reachable"},
		errs:  map[string]error{"https://down.example": errors.New("connection refused")},
	}
	gen := &fakeGenerator{answer: "still answered"}
	a := NewAnalyzer(fetcher, gen)

	got, err := a.Answer(context.Background(), []string{"https://down.example", "https://ok.example"}, "q")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "still answered" {
		t.Errorf("answer = %q", got)
	}
	if strings.Contains(gen.prompt, "down.example:") {
		t.Errorf("prompt includes failed page: %s", gen.prompt)
	}
}

func TestAnalyzerFailsWhenNothingFetched(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{"https://down.example": errors.New("timeout")}}
	a := NewAnalyzer(fetcher, &fakeGenerator{})

	_, err := a.Answer(context.Background(), []string{"https://down.example"}, "q")
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}

func TestAnalyzerStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := &fakeFetcher{errs: map[string]error{"https://a.example": context.Canceled}}
	a := NewAnalyzer(fetcher, &fakeGenerator{})

	_, err := a.Answer(ctx, []string{"https://a.example", "https://b.example"}, "q")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("fetch calls = %d, want 1", len(fetcher.calls))
	}
}

func TestAnalyzerWrapsGeneratorFailure(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://a.example": "text"}}
	genErr := errors.New("model overloaded")
	a := NewAnalyzer(fetcher, &fakeGenerator{err: genErr})

	_, err := a.Answer(context.Background(), []string{"https://a.example"}, "q")
	if !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want wrapped %v", err, genErr)
	}
}
