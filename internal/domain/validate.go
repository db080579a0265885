package domain

// User-facing validation and submission messages.
const (
	MsgNoURL        = "Please enter at least one URL"
	MsgInvalidURL   = "Please enter a valid URL (e.g., https://example.com)"
	MsgNoQuestion   = "Please enter a question"
	MsgSubmitFailed = "An error occurred while processing your request"
)

// FormErrors aggregates the messages produced by one validation pass,
// keyed to the entity each describes. A validation pass rebuilds the whole
// value; field edits clear single messages through the With* helpers.
type FormErrors struct {
	URLErrors     map[int]string
	QuestionError string
	GeneralError  string
}

// IsEmpty reports whether no message is set.
func (e FormErrors) IsEmpty() bool {
	return len(e.URLErrors) == 0 && e.QuestionError == "" && e.GeneralError == ""
}

// URLError returns the message recorded for one entry index, if any.
func (e FormErrors) URLError(index int) string {
	if e.URLErrors == nil {
		return ""
	}
	return e.URLErrors[index]
}

// WithURLErrorCleared drops the message for one entry index. Used for the
// optimistic clear on edit, independent of the new text's validity.
func (e FormErrors) WithURLErrorCleared(index int) FormErrors {
	out := e.clone()
	delete(out.URLErrors, index)
	return out
}

// WithURLErrorDiscarded drops the message for a removed entry and reindexes
// the messages of the entries that shifted down.
func (e FormErrors) WithURLErrorDiscarded(index int) FormErrors {
	out := e.clone()
	delete(out.URLErrors, index)
	shifted := make(map[int]string, len(out.URLErrors))
	for idx, msg := range out.URLErrors {
		if idx > index {
			shifted[idx-1] = msg
			continue
		}
		shifted[idx] = msg
	}
	out.URLErrors = shifted
	return out
}

// WithQuestionErrorCleared drops the question message.
func (e FormErrors) WithQuestionErrorCleared() FormErrors {
	out := e.clone()
	out.QuestionError = ""
	return out
}

// WithGeneralError replaces the form-level message.
func (e FormErrors) WithGeneralError(msg string) FormErrors {
	out := e.clone()
	out.GeneralError = msg
	return out
}

// clone deep-copies the error set.
func (e FormErrors) clone() FormErrors {
	urlErrors := make(map[int]string, len(e.URLErrors))
	for idx, msg := range e.URLErrors {
		urlErrors[idx] = msg
	}
	return FormErrors{
		URLErrors:     urlErrors,
		QuestionError: e.QuestionError,
		GeneralError:  e.GeneralError,
	}
}

// ValidateForm computes whole-form validity and a freshly built error set
// from the current form state. Identical inputs always yield identical
// output; prior errors are never consulted.
//
// Blank entries never receive a per-entry message: presence is checked at
// the form level, validity only for entries the user actually filled in.
func ValidateForm(f Form) (bool, FormErrors) {
	errs := FormErrors{URLErrors: map[int]string{}}
	valid := true

	if !f.HasNonBlankEntry() {
		errs.GeneralError = MsgNoURL
		valid = false
	}
	for idx, entry := range f.Entries {
		if entry.Status() == EntryInvalid {
			errs.URLErrors[idx] = MsgInvalidURL
			valid = false
		}
	}
	if f.TrimmedQuestion() == "" {
		errs.QuestionError = MsgNoQuestion
		valid = false
	}
	return valid, errs
}
