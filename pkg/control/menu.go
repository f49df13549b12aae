package control

import "strings"

// Menu is a cyclic single-choice selector.
type Menu struct {
	Choices []string
	Index   int
}

// NewMenu creates a menu positioned on selected, or on the first choice
// when selected is not present.
func NewMenu(choices []string, selected string) *Menu {
	m := &Menu{Choices: append([]string(nil), choices...)}
	m.Select(selected)
	return m
}

// Selected returns the current choice, or "" for an empty menu.
func (m *Menu) Selected() string {
	if len(m.Choices) == 0 {
		return ""
	}
	return m.Choices[m.Index]
}

// Next advances to the following choice, wrapping around.
func (m *Menu) Next() string {
	if len(m.Choices) > 0 {
		m.Index = (m.Index + 1) % len(m.Choices)
	}
	return m.Selected()
}

// Prev moves to the previous choice, wrapping around.
func (m *Menu) Prev() string {
	if len(m.Choices) > 0 {
		m.Index = (m.Index - 1 + len(m.Choices)) % len(m.Choices)
	}
	return m.Selected()
}

// Select moves to name, ignoring case. It reports whether name was found.
func (m *Menu) Select(name string) bool {
	for i, c := range m.Choices {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			m.Index = i
			return true
		}
	}
	return false
}
