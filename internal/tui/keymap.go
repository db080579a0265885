package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit        key.Binding
	nextField   key.Binding
	prevField   key.Binding
	addEntry    key.Binding
	removeEntry key.Binding
	submit      key.Binding
	cancel      key.Binding
	copyAnswer  key.Binding
	toggleHelp  key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		nextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		prevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
		addEntry:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add url")),
		removeEntry: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove url")),
		submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel request")),
		copyAnswer:  key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy answer")),
		toggleHelp:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "toggle help")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.addEntry, k.removeEntry, k.copyAnswer, k.quit}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextField, k.prevField, k.addEntry, k.removeEntry},
		{k.submit, k.cancel, k.copyAnswer, k.toggleHelp, k.quit},
	}
}
