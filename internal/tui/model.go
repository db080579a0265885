// Package tui implements the interactive form for asking questions about web pages.
package tui

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/hylla/fraga/internal/app"
	"github.com/hylla/fraga/internal/domain"
)

// Service represents service data used by this package.
type Service interface {
	Submit(context.Context, domain.Form) (domain.Submission, error)
}

// answerMsg carries the outcome of one submission back into the update loop.
type answerMsg struct {
	submission domain.Submission
	err        error
}

// Model represents model data used by this package.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int

	form      domain.Form
	errs      domain.FormErrors
	phase     domain.Phase
	result    domain.Submission
	hasResult bool
	failure   error

	entryInputs   []textinput.Model
	questionInput textinput.Model
	focus         int

	status string

	help help.Model
	keys keyMap

	copyFn       func(string) error
	cancelSubmit context.CancelFunc
	md           *answerRenderer
}

// NewModel constructs model.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false

	questionInput := textinput.New()
	questionInput.Prompt = "question> "
	questionInput.Placeholder = "what do you want to know?"
	questionInput.CharLimit = 512

	m := Model{
		svc:           svc,
		form:          domain.NewForm(),
		phase:         domain.PhaseIdle,
		entryInputs:   []textinput.Model{newEntryInput()},
		questionInput: questionInput,
		status:        "ready",
		help:          h,
		keys:          newKeyMap(),
		copyFn:        defaultCopyFunc,
		md:            newAnswerRenderer(defaultAnswerStyle),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.entryInputs[0].Focus()
	return m
}

// newEntryInput constructs one URL entry input.
func newEntryInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "url> "
	in.Placeholder = "https://example.com"
	in.CharLimit = 2048
	return in
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case answerMsg:
		if m.cancelSubmit != nil {
			m.cancelSubmit()
			m.cancelSubmit = nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, app.ErrSubmissionCanceled) {
				m.phase = domain.PhaseIdle
				m.status = "request canceled"
				return m, nil
			}
			if vErr, ok := app.AsValidationError(msg.err); ok {
				m.phase = domain.PhaseIdle
				m.errs = vErr.Errors
				m.status = "fix the highlighted fields"
				return m, nil
			}
			m.phase = domain.PhaseFailed
			m.failure = msg.err
			m.errs = m.errs.WithGeneralError(domain.MsgSubmitFailed)
			m.status = "request failed"
			return m, nil
		}
		m.phase = domain.PhaseSucceeded
		m.result = msg.submission
		m.hasResult = true
		m.failure = nil
		m.errs = domain.FormErrors{}
		m.status = "answered"
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	default:
		return m, nil
	}
}

// handleKey routes one key press by mode: global actions first, then form edits.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if m.cancelSubmit != nil {
			m.cancelSubmit()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.copyAnswer):
		if m.hasResult && m.result.Answer != "" {
			if err := m.copyFn(m.result.Answer); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "answer copied"
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.cancel):
		if m.phase == domain.PhaseLoading && m.cancelSubmit != nil {
			m.cancelSubmit()
			m.status = "canceling..."
		}
		return m, nil
	}

	// The form is frozen while a request is in flight, so a second enter is
	// a no-op and edits cannot drift away from the submitted snapshot.
	if m.phase == domain.PhaseLoading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.submit):
		return m.startSubmit()
	case key.Matches(msg, m.keys.addEntry):
		return m.addEntry()
	case key.Matches(msg, m.keys.removeEntry):
		return m.removeEntry()
	case key.Matches(msg, m.keys.nextField):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.prevField):
		return m, m.moveFocus(-1)
	}

	return m.updateFocusedInput(msg)
}

// startSubmit validates the form and dispatches one submission command.
func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	m.phase = domain.PhaseValidating
	ok, errs := domain.ValidateForm(m.form)
	if !ok {
		m.phase = domain.PhaseIdle
		m.errs = errs
		m.status = "fix the highlighted fields"
		return m, nil
	}

	m.errs = domain.FormErrors{}
	m.phase = domain.PhaseLoading
	m.status = "asking..."

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSubmit = cancel
	svc := m.svc
	form := m.form
	return m, func() tea.Msg {
		sub, err := svc.Submit(ctx, form)
		return answerMsg{submission: sub, err: err}
	}
}

// addEntry appends one blank URL row and focuses it.
func (m Model) addEntry() (tea.Model, tea.Cmd) {
	m.form = m.form.WithEntryAdded()
	m.entryInputs = append(m.entryInputs, newEntryInput())
	m.resetPhaseAfterResult()
	return m, m.setFocus(len(m.entryInputs) - 1)
}

// removeEntry removes the focused URL row. Removing the sole row leaves one
// blank row in its place.
func (m Model) removeEntry() (tea.Model, tea.Cmd) {
	if m.focus >= len(m.entryInputs) {
		return m, nil
	}
	updated, err := m.form.WithEntryRemoved(m.focus)
	if err != nil {
		return m, nil
	}
	m.form = updated
	m.errs = m.errs.WithURLErrorDiscarded(m.focus)
	m.syncEntryInputs()
	m.resetPhaseAfterResult()

	focus := m.focus
	if focus >= len(m.entryInputs) {
		focus = len(m.entryInputs) - 1
	}
	return m, m.setFocus(focus)
}

// updateFocusedInput forwards one key to the focused text input and mirrors
// the new value into the form, clearing the field's error optimistically.
func (m Model) updateFocusedInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == len(m.entryInputs) {
		m.questionInput, cmd = m.questionInput.Update(msg)
		m.form = m.form.WithQuestion(m.questionInput.Value())
		m.errs = m.errs.WithQuestionErrorCleared()
	} else {
		i := m.focus
		m.entryInputs[i], cmd = m.entryInputs[i].Update(msg)
		updated, err := m.form.WithEntryUpdated(i, m.entryInputs[i].Value())
		if err == nil {
			m.form = updated
		}
		m.errs = m.errs.WithURLErrorCleared(i)
		if m.form.HasNonBlankEntry() {
			m.errs = m.errs.WithGeneralError("")
		}
	}
	m.resetPhaseAfterResult()
	return m, cmd
}

// resetPhaseAfterResult returns the form to Idle once the user edits again
// after a finished request. The last answer stays visible.
func (m *Model) resetPhaseAfterResult() {
	if m.phase == domain.PhaseSucceeded || m.phase == domain.PhaseFailed {
		m.phase = domain.PhaseIdle
		m.status = "ready"
	}
}

// moveFocus advances focus across URL rows and the question field. The
// question field is skipped until at least one URL is valid.
func (m *Model) moveFocus(delta int) tea.Cmd {
	total := len(m.entryInputs) + 1
	questionIdx := len(m.entryInputs)
	next := m.focus
	for range total {
		next = (next + delta + total) % total
		if next == questionIdx && !m.form.HasValidEntry() {
			continue
		}
		break
	}
	return m.setFocus(next)
}

// setFocus blurs every input and focuses the requested one.
func (m *Model) setFocus(idx int) tea.Cmd {
	for i := range m.entryInputs {
		m.entryInputs[i].Blur()
	}
	m.questionInput.Blur()
	m.focus = idx
	if idx == len(m.entryInputs) {
		return m.questionInput.Focus()
	}
	return m.entryInputs[idx].Focus()
}

// syncEntryInputs rebuilds the URL inputs from the form entries after rows move.
func (m *Model) syncEntryInputs() {
	entries := m.form.Entries
	inputs := make([]textinput.Model, len(entries))
	for i := range entries {
		if i < len(m.entryInputs) {
			inputs[i] = m.entryInputs[i]
		} else {
			inputs[i] = newEntryInput()
		}
		inputs[i].SetValue(entries[i].Text)
		inputs[i].CursorEnd()
	}
	m.entryInputs = inputs
}

// phaseLabel maps the submission phase to a status-line label.
func (m Model) phaseLabel() string {
	switch m.phase {
	case domain.PhaseValidating:
		return "validating"
	case domain.PhaseLoading:
		return "waiting for answer... (esc to cancel)"
	case domain.PhaseSucceeded:
		return "answered"
	case domain.PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// View handles view.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle := lipgloss.NewStyle().Foreground(dim)
	statusStyle := lipgloss.NewStyle().Foreground(muted)

	sections := []string{titleStyle.Render("fraga"), ""}

	for i := range m.entryInputs {
		sections = append(sections, m.entryInputs[i].View())
		if msg := m.errs.URLError(i); msg != "" {
			sections = append(sections, errStyle.Render("  "+msg))
		}
	}
	if m.errs.GeneralError != "" {
		sections = append(sections, errStyle.Render(m.errs.GeneralError))
	}
	sections = append(sections, "")

	if m.form.HasValidEntry() {
		sections = append(sections, m.questionInput.View())
		if m.errs.QuestionError != "" {
			sections = append(sections, errStyle.Render("  "+m.errs.QuestionError))
		}
	} else {
		sections = append(sections, dimStyle.Render("enter a valid url to ask a question"))
	}

	sections = append(sections, "", statusStyle.Render(m.phaseLabel()+" • "+m.status))

	if m.hasResult && m.result.Answer != "" {
		rendered := m.md.render(m.result.Answer, max(0, m.width-4))
		sections = append(sections, "", titleStyle.Render("answer"), rendered)
	}

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		Padding(0, 1).
		Render(helpBubble.View(m.keys))
	sections = append(sections, "", helpLine)

	v := tea.NewView(strings.Join(sections, "\n"))
	v.AltScreen = true
	return v
}
