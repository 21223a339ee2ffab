// Package listing renders the flat textual view of one container node:
// a header naming the node, a fixed-width table of its children, and the
// node's attributes. The renderer also produces an explicit row-to-name
// mapping so callers never re-parse rendered text to find out what the
// cursor is on.
package listing

import (
	"context"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/h5x/internal/provider"
)

// Column widths of the child table (type, shape, range, name) and the
// attribute table (value, name).
var (
	childWidths = [4]int{8, 15, 20, 30}
	attrWidths  = [2]int{45, 30}
)

// Row maps one selectable listing row to the field or attribute it
// shows. Line is the index of the row's line within Listing.Lines.
type Row struct {
	Name string             // raw child or attribute name
	Kind provider.FieldKind // empty for attribute rows
	Attr bool
	Line int
}

// Display returns the name as rendered, with the trailing separator that
// distinguishes groups from leaves.
func (r Row) Display() string {
	if r.Kind == provider.FieldGroup {
		return r.Name + "/"
	}
	return r.Name
}

// Listing is one rendered view of a node. Rows holds only selectable rows
// (children first, then attributes), in display order; cursor positions
// index into it. DefaultCursor is -1 when the node has no selectable rows.
type Listing struct {
	Path          string
	Lines         []string
	Rows          []Row
	DefaultCursor int
}

// Text returns the full listing as a single string.
func (l *Listing) Text() string {
	return strings.Join(l.Lines, "\n")
}

// RowAt returns the row at cursor position i.
func (l *Listing) RowAt(i int) (Row, bool) {
	if i < 0 || i >= len(l.Rows) {
		return Row{}, false
	}
	return l.Rows[i], true
}

// Renderer queries the provider and lays out listings. It holds no state
// across renders; every call re-queries the provider.
type Renderer struct {
	client provider.Client
}

func NewRenderer(client provider.Client) *Renderer {
	return &Renderer{client: client}
}

// Render lists the children and attributes of path and lays them out.
// Children and attributes keep the provider's reply order. When anchor is
// non-empty, DefaultCursor is the child row whose rendered name (trailing
// separator included) equals anchor; otherwise it is the first child row.
// Any provider failure is returned as-is and nothing is rendered.
func (r *Renderer) Render(ctx context.Context, path, anchor string) (*Listing, error) {
	children, err := r.client.ListChildren(ctx, path)
	if err != nil {
		return nil, err
	}
	attrs, err := r.client.ListAttributes(ctx, path)
	if err != nil {
		return nil, err
	}

	l := &Listing{Path: path, DefaultCursor: -1}
	l.Lines = append(l.Lines, "Path: "+path)
	l.Lines = append(l.Lines, childHeader())

	for _, f := range children {
		row := Row{Name: f.Name, Kind: f.Kind, Line: len(l.Lines)}
		l.Lines = append(l.Lines, childLine(f))
		l.Rows = append(l.Rows, row)
		if l.DefaultCursor < 0 {
			l.DefaultCursor = len(l.Rows) - 1
		}
		if anchor != "" && row.Display() == anchor {
			l.DefaultCursor = len(l.Rows) - 1
			anchor = "" // first match wins
		}
	}

	if len(attrs) > 0 {
		l.Lines = append(l.Lines, "")
		l.Lines = append(l.Lines, attrHeader())
		for _, a := range attrs {
			valueLines := strings.Split(a.Value, "\n")
			row := Row{Name: a.Name, Attr: true, Line: len(l.Lines)}
			l.Lines = append(l.Lines, pad(valueLines[0], attrWidths[0])+a.Name)
			for _, extra := range valueLines[1:] {
				l.Lines = append(l.Lines, pad("  "+extra, attrWidths[0]))
			}
			l.Rows = append(l.Rows, row)
			if l.DefaultCursor < 0 {
				l.DefaultCursor = len(l.Rows) - 1
			}
		}
	}

	// Fixed-width padding on the last column only matters for truncation;
	// keep rendered lines free of trailing blanks.
	for i := range l.Lines {
		l.Lines[i] = strings.TrimRight(l.Lines[i], " ")
	}

	return l, nil
}

func childHeader() string {
	return pad("TYPE", childWidths[0]) +
		pad("SHAPE", childWidths[1]) +
		pad("RANGE", childWidths[2]) +
		"NAME"
}

func childLine(f provider.Field) string {
	var kind, shape string
	switch f.Kind {
	case provider.FieldGroup:
		kind = string(provider.FieldGroup)
		shape = "N/A"
	case provider.FieldDataset:
		kind = f.Dtype
		shape = f.Shape.String()
	default:
		kind = string(provider.FieldOther)
	}
	name := f.Name
	if f.Kind == provider.FieldGroup {
		name += "/"
	}
	return pad(kind, childWidths[0]) +
		pad(shape, childWidths[1]) +
		pad(f.Range, childWidths[2]) +
		pad(name, childWidths[3])
}

func attrHeader() string {
	return pad("VALUE", attrWidths[0]) + pad("NAME", attrWidths[1])
}

// pad renders one fixed-width cell: content wider than the column is
// truncated with an ellipsis, narrower content is filled to the width.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width-1, "…")
	}
	return runewidth.FillRight(s, width)
}
