// Package ui is the Bubble Tea front end of the browser. It owns no
// navigation logic: every action is delegated to the session controller
// and the model only displays what comes back.
package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/h5x/internal/session"
)

type mode int

const (
	modeBrowse mode = iota
	modeLeaf
	modePrompt
)

// Model is the top-level Bubble Tea model of one browsing session.
type Model struct {
	Title   string
	NoColor bool

	ctx        context.Context
	controller *session.Controller

	// Browse state. cursor indexes listing rows; scrollTop is the first
	// visible line of the listing text.
	view      *session.View
	cursor    int
	scrollTop int

	leaf *leafView

	prompt textinput.Model
	mode   mode

	status string
	width  int
	height int
}

// NewModel builds the model from the session's first rendered view. The
// blocking initial provider round-trip belongs to the caller, not to
// Init, so a provider failure surfaces before the terminal is taken
// over.
func NewModel(ctx context.Context, title string, ctrl *session.Controller, first *session.View) *Model {
	ti := textinput.New()
	ti.Placeholder = "path (e.g. /g1/dset1.1.1)"
	ti.CharLimit = 500
	ti.Prompt = "goto: "

	return &Model{
		Title:      title,
		ctx:        ctx,
		controller: ctrl,
		view:       first,
		cursor:     first.Cursor,
		prompt:     ti,
		width:      80,
		height:     24,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := m.width - len(m.prompt.Prompt) - 2
		if w < 20 {
			w = 20
		}
		m.prompt.SetWidth(w)
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeLeaf:
			return m.updateLeaf(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.setCursor(m.cursor - 1)
	case "down", "j":
		m.setCursor(m.cursor + 1)
	case "home":
		m.setCursor(0)
	case "end":
		m.setCursor(len(m.view.Listing.Rows) - 1)

	case "enter", "right":
		if row, ok := m.view.Listing.RowAt(m.cursor); ok && !row.Attr {
			m.apply(m.controller.Descend(m.ctx, row.Name))
		}

	case "left", "backspace":
		m.apply(m.controller.Ascend(m.ctx, m.cursor))

	case "f":
		m.apply(m.controller.Forward(m.ctx))

	case "g":
		m.mode = modePrompt
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case "p":
		if row, ok := m.view.Listing.RowAt(m.cursor); ok && !row.Attr {
			m.apply(m.controller.Preview(m.ctx, row.Name))
		}

	case "r":
		view, err := m.controller.Refresh(m.ctx, m.cursor)
		if err != nil {
			m.status = err.Error()
		} else {
			m.setView(view)
		}

	case "y":
		m.copyName()
	}
	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.prompt.Blur()
		return m, nil
	case "enter":
		input := strings.TrimSpace(m.prompt.Value())
		m.mode = modeBrowse
		m.prompt.Blur()
		if input != "" {
			m.apply(m.controller.Jump(m.ctx, input))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) updateLeaf(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "left", "backspace":
		m.mode = modeBrowse
		m.leaf = nil
	case "up", "k":
		m.leaf.scroll(-1, m.bodyHeight())
	case "down", "j":
		m.leaf.scroll(1, m.bodyHeight())
	case "pgup":
		m.leaf.scroll(-m.bodyHeight(), m.bodyHeight())
	case "pgdown":
		m.leaf.scroll(m.bodyHeight(), m.bodyHeight())
	}
	return m, nil
}

// apply folds a controller result into the model. A nil result is the
// silent no-op the navigation contract promises; errors land on the
// status line and change nothing else.
func (m *Model) apply(res *session.Result, err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	if res == nil {
		return
	}
	if res.Leaf != nil {
		m.leaf = newLeafView(res.LeafPath, res.Leaf)
		m.mode = modeLeaf
		return
	}
	if res.View != nil {
		m.setView(res.View)
	}
}

func (m *Model) setView(v *session.View) {
	m.view = v
	m.cursor = v.Cursor
	m.scrollTop = 0
	m.clampScroll()
}

func (m *Model) copyName() {
	row, ok := m.view.Listing.RowAt(m.cursor)
	if !ok {
		return
	}
	path, isAttr, err := m.controller.CopyTarget(m.ctx, row)
	if err != nil {
		m.status = err.Error()
		return
	}
	kind := "field"
	if isAttr {
		kind = "attribute"
	}
	if err := CopyToClipboard(path); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %s (%s)", path, kind)
}

func (m *Model) setCursor(pos int) {
	n := len(m.view.Listing.Rows)
	if n == 0 {
		m.cursor = -1
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		pos = n - 1
	}
	m.cursor = pos
	m.clampScroll()
}

// clampScroll keeps the cursor's line inside the visible window.
func (m *Model) clampScroll() {
	h := m.bodyHeight()
	if row, ok := m.view.Listing.RowAt(m.cursor); ok {
		if row.Line < m.scrollTop {
			m.scrollTop = row.Line
		}
		if row.Line >= m.scrollTop+h {
			m.scrollTop = row.Line - h + 1
		}
	}
	maxTop := len(m.view.Listing.Lines) - h
	if maxTop < 0 {
		maxTop = 0
	}
	if m.scrollTop > maxTop {
		m.scrollTop = maxTop
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
}

// bodyHeight is the number of content lines between the title and the
// footer.
func (m *Model) bodyHeight() int {
	h := m.height - 3
	if h < 3 {
		h = 3
	}
	return h
}
