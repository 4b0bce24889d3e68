package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/ui/theme"
)

// SearchBox wraps bubbles/textinput as a list filter field.
type SearchBox struct {
	Model   textinput.Model
	Focused bool
}

// NewSearchBox creates a search field with the given placeholder.
func NewSearchBox(placeholder string) SearchBox {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 40
	return SearchBox{Model: ti}
}

// Focus puts the field in input mode.
func (s *SearchBox) Focus() tea.Cmd {
	s.Focused = true
	return s.Model.Focus()
}

// Blur leaves input mode, keeping the current query.
func (s *SearchBox) Blur() {
	s.Focused = false
	s.Model.Blur()
}

// Update forwards messages to the input while focused.
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the search field.
func (s SearchBox) View() string {
	prefix := lipgloss.NewStyle().Foreground(theme.TextDim).Render("搜索: ")
	return prefix + s.Model.View()
}

// Query returns the current filter text.
func (s SearchBox) Query() string {
	return s.Model.Value()
}
