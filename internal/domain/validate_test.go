package domain

import (
	"reflect"
	"testing"
)

func formWith(urls []string, question string) Form {
	f := NewForm()
	for i, raw := range urls {
		if i > 0 {
			f = f.WithEntryAdded()
		}
		f, _ = f.WithEntryUpdated(i, raw)
	}
	return f.WithQuestion(question)
}

func TestValidateFormAllValid(t *testing.T) {
	f := formWith([]string{"https://example.com", "", "http://other.example"}, "What is this?")
	ok, errs := ValidateForm(f)
	if !ok {
		t.Fatalf("expected valid form, got errors %#v", errs)
	}
	if !errs.IsEmpty() {
		t.Fatalf("expected empty error set, got %#v", errs)
	}
}

func TestValidateFormAllBlankEntries(t *testing.T) {
	f := formWith([]string{"", "  "}, "interesting question")
	ok, errs := ValidateForm(f)
	if ok {
		t.Fatal("expected invalid form")
	}
	if errs.GeneralError != MsgNoURL {
		t.Fatalf("expected general error %q, got %q", MsgNoURL, errs.GeneralError)
	}
	if len(errs.URLErrors) != 0 {
		t.Fatalf("blank entries must not receive per-entry errors: %#v", errs.URLErrors)
	}
}

func TestValidateFormInvalidURLNoGeneralError(t *testing.T) {
	f := formWith([]string{"not-a-url"}, "What?")
	ok, errs := ValidateForm(f)
	if ok {
		t.Fatal("expected invalid form")
	}
	if errs.URLError(0) != MsgInvalidURL {
		t.Fatalf("expected url error at 0, got %#v", errs.URLErrors)
	}
	if errs.GeneralError != "" {
		t.Fatalf("a non-blank entry exists; general error must be absent, got %q", errs.GeneralError)
	}
	if errs.QuestionError != "" {
		t.Fatalf("question is non-empty; question error must be absent, got %q", errs.QuestionError)
	}
}

func TestValidateFormBlankFormReportsBothErrors(t *testing.T) {
	f := NewForm()
	ok, errs := ValidateForm(f)
	if ok {
		t.Fatal("expected invalid form")
	}
	if errs.GeneralError != MsgNoURL {
		t.Fatalf("expected %q, got %q", MsgNoURL, errs.GeneralError)
	}
	if errs.QuestionError != MsgNoQuestion {
		t.Fatalf("expected %q, got %q", MsgNoQuestion, errs.QuestionError)
	}
}

func TestValidateFormWhitespaceQuestion(t *testing.T) {
	f := formWith([]string{"https://example.com"}, "   ")
	ok, errs := ValidateForm(f)
	if ok {
		t.Fatal("expected invalid form")
	}
	if errs.QuestionError != MsgNoQuestion {
		t.Fatalf("expected question error, got %#v", errs)
	}
}

func TestValidateFormIdempotent(t *testing.T) {
	f := formWith([]string{"not-a-url", "https://example.com", "bad too"}, "")
	_, first := ValidateForm(f)
	_, second := ValidateForm(f)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical error structures, got %#v vs %#v", first, second)
	}
}

func TestFormErrorsOptimisticClear(t *testing.T) {
	f := formWith([]string{"not-a-url", "also-bad"}, "")
	_, errs := ValidateForm(f)
	if len(errs.URLErrors) != 2 || errs.QuestionError == "" {
		t.Fatalf("unexpected starting errors %#v", errs)
	}

	cleared := errs.WithURLErrorCleared(0)
	if cleared.URLError(0) != "" {
		t.Fatal("expected index 0 error cleared")
	}
	if cleared.URLError(1) != MsgInvalidURL {
		t.Fatal("expected index 1 error retained")
	}
	if errs.URLError(0) != MsgInvalidURL {
		t.Fatal("expected original error set untouched")
	}

	qCleared := errs.WithQuestionErrorCleared()
	if qCleared.QuestionError != "" {
		t.Fatal("expected question error cleared")
	}
}

func TestFormErrorsDiscardReindexesOnRemoval(t *testing.T) {
	f := formWith([]string{"bad-one", "https://ok.example", "bad-two"}, "q")
	_, errs := ValidateForm(f)
	if errs.URLError(0) != MsgInvalidURL || errs.URLError(2) != MsgInvalidURL {
		t.Fatalf("unexpected starting errors %#v", errs)
	}

	// Removing entry 0 shifts the error recorded at index 2 down to 1.
	shifted := errs.WithURLErrorDiscarded(0)
	if shifted.URLError(0) != "" {
		t.Fatalf("expected removed entry's error discarded, got %#v", shifted.URLErrors)
	}
	if shifted.URLError(1) != MsgInvalidURL {
		t.Fatalf("expected trailing error reindexed to 1, got %#v", shifted.URLErrors)
	}
}
