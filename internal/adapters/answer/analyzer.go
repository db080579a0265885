package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoContent reports that none of the submitted URLs yielded any text.
var ErrNoContent = errors.New("answer: no content could be fetched from the provided urls")

// TextFetcher extracts the readable text of one page.
type TextFetcher interface {
	FetchText(ctx context.Context, pageURL string) (string, error)
}

// Generator produces a completion for one prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Logger is the subset of the runtime logger the analyzer needs.
type Logger interface {
	Warn(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Analyzer answers a question from the combined content of a set of pages.
// It satisfies the application's Answerer port.
type Analyzer struct {
	fetcher   TextFetcher
	generator Generator
	log       Logger
}

// NewAnalyzer wires a fetcher and a generator into an answer service.
func NewAnalyzer(fetcher TextFetcher, generator Generator) *Analyzer {
	return &Analyzer{fetcher: fetcher, generator: generator, log: nopLogger{}}
}

// SetLogger replaces the analyzer's logger. A nil logger is ignored.
func (a *Analyzer) SetLogger(log Logger) {
	if log != nil {
		a.log = log
	}
}

// Answer fetches every URL, skips the ones that fail, and asks the model the
// question against the combined page text. It fails only when no page could
// be fetched or the model call fails.
func (a *Analyzer) Answer(ctx context.Context, urls []string, question string) (string, error) {
	var sections []string
	for _, pageURL := range urls {
		text, err := a.fetcher.FetchText(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			a.log.Warn("skipping unreachable url", "url", pageURL, "error", err)
			continue
		}
		sections = append(sections, fmt.Sprintf("Content from %s:\n%s", pageURL, text))
	}
	if len(sections) == 0 {
		return "", ErrNoContent
	}

	prompt := buildPrompt(sections, question)
	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

func buildPrompt(sections []string, question string) string {
	var b strings.Builder
	b.WriteString("Based on the following web page content, answer the question.\n\n")
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer concisely using only the content above.")
	return b.String()
}
