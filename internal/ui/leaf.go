package ui

import (
	"strings"

	"github.com/oakwood-commons/h5x/internal/provider"
)

// leafView is the read-only contents view of a dataset or other leaf.
// Scrolling is plain line scrolling over pre-split content, the same way
// the rest of the UI handles long text.
type leafView struct {
	path      string
	lines     []string
	scrollTop int
}

func newLeafView(path string, leaf *provider.Leaf) *leafView {
	header := "dtype: " + leaf.Dtype
	if leaf.Shape != "" {
		header += "    shape: " + leaf.Shape
	}
	lines := []string{header, ""}
	lines = append(lines, strings.Split(leaf.Data, "\n")...)
	return &leafView{path: path, lines: lines}
}

func (v *leafView) scroll(delta, height int) {
	v.scrollTop += delta
	maxTop := len(v.lines) - height
	if maxTop < 0 {
		maxTop = 0
	}
	if v.scrollTop > maxTop {
		v.scrollTop = maxTop
	}
	if v.scrollTop < 0 {
		v.scrollTop = 0
	}
}

func (v *leafView) render(height int) string {
	end := v.scrollTop + height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	return strings.Join(v.lines[v.scrollTop:end], "\n")
}
