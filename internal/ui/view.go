package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const browseFooter = "enter descend · left back · f forward · g goto · p preview · r refresh · y copy · q quit"
const leafFooter = "up/down scroll · esc back"

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render builds the full frame as plain text. Kept separate from View so
// tests can assert on the string directly.
func (m *Model) render() string {
	var b strings.Builder

	title := m.Title
	if m.mode == modeLeaf {
		title += "  [" + m.leaf.path + "]"
	}
	if m.NoColor {
		b.WriteString(title + "\n")
	} else {
		b.WriteString(titleStyle.Render(title) + "\n")
	}

	switch m.mode {
	case modeLeaf:
		b.WriteString(m.leaf.render(m.scrollWindow()))
	default:
		b.WriteString(m.renderListing())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) scrollWindow() int { return m.bodyHeight() }

func (m *Model) renderListing() string {
	lines := m.view.Listing.Lines
	cursorLine := -1
	if row, ok := m.view.Listing.RowAt(m.cursor); ok {
		cursorLine = row.Line
	}

	end := m.scrollTop + m.bodyHeight()
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := m.scrollTop; i < end; i++ {
		line := lines[i]
		if i == cursorLine {
			// Reverse-video works with and without color.
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	if m.mode == modePrompt {
		return m.prompt.View()
	}
	if m.status != "" {
		if m.NoColor {
			return m.status
		}
		return statusStyle.Render(m.status)
	}
	footer := browseFooter
	if m.mode == modeLeaf {
		footer = leafFooter
	}
	if m.NoColor {
		return footer
	}
	return footerStyle.Render(footer)
}
