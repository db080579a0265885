package domain

import (
	"net/url"
	"strings"
)

// EntryStatus classifies one URL entry by its current text. Status is
// derived on demand and never stored.
type EntryStatus int

const (
	EntryBlank EntryStatus = iota
	EntryValid
	EntryInvalid
)

// URLEntry is one URL input slot. Its position in Form.Entries is its
// identity; display order equals submission order.
type URLEntry struct {
	Text string
}

// Status derives the entry's validity from its text.
func (e URLEntry) Status() EntryStatus {
	if strings.TrimSpace(e.Text) == "" {
		return EntryBlank
	}
	if ValidateURL(e.Text) != nil {
		return EntryInvalid
	}
	return EntryValid
}

// ValidateURL reports whether raw parses as an absolute URL with an
// http or https scheme. Scheme comparison is case-insensitive.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ErrInvalidURL
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return ErrInvalidURL
	}
	if strings.TrimSpace(u.Host) == "" {
		return ErrInvalidURL
	}
	return nil
}

// Form is an immutable snapshot of the ask form: an ordered list of URL
// entries and one question. All updates return a new value.
//
// Invariant: Entries is never empty.
type Form struct {
	Entries  []URLEntry
	Question string
}

// NewForm returns a form with a single blank URL entry and an empty question.
func NewForm() Form {
	return Form{Entries: []URLEntry{{}}}
}

// WithEntryAdded appends one blank URL entry.
func (f Form) WithEntryAdded() Form {
	out := f.clone()
	out.Entries = append(out.Entries, URLEntry{})
	return out
}

// WithEntryUpdated replaces the text at index.
func (f Form) WithEntryUpdated(index int, text string) (Form, error) {
	if index < 0 || index >= len(f.Entries) {
		return Form{}, ErrEntryIndex
	}
	out := f.clone()
	out.Entries[index].Text = text
	return out, nil
}

// WithEntryRemoved removes the entry at index. Removing the sole remaining
// entry reinstates one blank entry so the list never becomes empty.
func (f Form) WithEntryRemoved(index int) (Form, error) {
	if index < 0 || index >= len(f.Entries) {
		return Form{}, ErrEntryIndex
	}
	out := f.clone()
	if len(out.Entries) == 1 {
		out.Entries[0] = URLEntry{}
		return out, nil
	}
	out.Entries = append(out.Entries[:index], out.Entries[index+1:]...)
	return out, nil
}

// WithQuestion replaces the question text.
func (f Form) WithQuestion(text string) Form {
	out := f.clone()
	out.Question = text
	return out
}

// HasValidEntry reports whether at least one entry is a non-blank, valid
// http/https URL. This single predicate gates the question field and the
// submit control.
func (f Form) HasValidEntry() bool {
	for _, e := range f.Entries {
		if e.Status() == EntryValid {
			return true
		}
	}
	return false
}

// HasNonBlankEntry reports whether any entry has non-blank text.
func (f Form) HasNonBlankEntry() bool {
	for _, e := range f.Entries {
		if e.Status() != EntryBlank {
			return true
		}
	}
	return false
}

// ValidURLs returns the texts of all valid entries in display order.
func (f Form) ValidURLs() []string {
	out := make([]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		if e.Status() == EntryValid {
			out = append(out, strings.TrimSpace(e.Text))
		}
	}
	return out
}

// TrimmedQuestion returns the question with surrounding whitespace removed.
func (f Form) TrimmedQuestion() string {
	return strings.TrimSpace(f.Question)
}

// clone deep-copies the form so mutating helpers never alias the receiver.
func (f Form) clone() Form {
	entries := make([]URLEntry, len(f.Entries))
	copy(entries, f.Entries)
	return Form{Entries: entries, Question: f.Question}
}
