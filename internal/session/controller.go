package session

import (
	"context"

	"github.com/oakwood-commons/h5x/internal/hpath"
	"github.com/oakwood-commons/h5x/internal/listing"
	"github.com/oakwood-commons/h5x/internal/provider"
	"github.com/oakwood-commons/h5x/pkg/logger"
)

// View is a rendered listing plus the cursor position the caller should
// show, as an index into Listing.Rows.
type View struct {
	Listing *listing.Listing
	Cursor  int
}

// Result is the outcome of one navigation action. At most one of View
// and Leaf is set; both nil means the action was a silent no-op (missing
// target, or ascend at the root).
type Result struct {
	View     *View
	Leaf     *provider.Leaf
	LeafPath string
}

// Controller interprets user actions against the session State, drives
// the renderer, and keeps the history stack consistent. Transitions are
// atomic: every provider round-trip happens before any state mutation,
// so a failed action leaves the session exactly as it was.
type Controller struct {
	client   provider.Client
	renderer *listing.Renderer
	state    *State
}

func NewController(client provider.Client) *Controller {
	return &Controller{
		client:   client,
		renderer: listing.NewRenderer(client),
		state:    NewState(),
	}
}

// Path returns the current node path.
func (c *Controller) Path() string { return c.state.Current() }

// HistoryDepth returns the forward-history depth.
func (c *Controller) HistoryDepth() int { return c.state.Depth() }

// Open renders the root listing of a freshly opened session.
func (c *Controller) Open(ctx context.Context) (*View, error) {
	l, err := c.renderer.Render(ctx, c.state.current, "")
	if err != nil {
		return nil, err
	}
	return &View{Listing: l, Cursor: l.DefaultCursor}, nil
}

// Descend resolves name against the current path and navigates into it.
// Groups become the new current node; leaves open a read-only contents
// view without touching path or history; unknown names are a no-op.
func (c *Controller) Descend(ctx context.Context, name string) (*Result, error) {
	return c.navigateTo(ctx, hpath.Join(c.state.current, name))
}

// Jump navigates to a typed path. Input with a leading separator is
// resolved against the root, anything else against the current path.
func (c *Controller) Jump(ctx context.Context, input string) (*Result, error) {
	base := c.state.current
	if len(input) > 0 && input[0] == '/' {
		base = hpath.Root
	}
	return c.navigateTo(ctx, hpath.Join(base, input))
}

// Forward replays the top forward-history entry, if any. The replayed
// entry restores the cursor recorded when the user ascended.
func (c *Controller) Forward(ctx context.Context) (*Result, error) {
	e, ok := c.state.top()
	if !ok {
		return nil, nil
	}
	return c.navigateTo(ctx, e.Path)
}

func (c *Controller) navigateTo(ctx context.Context, target string) (*Result, error) {
	ok, err := c.client.IsField(ctx, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Commonly a stale cursor after an external mutation; expected
		// control flow, not an error.
		logger.FromContext(ctx).V(1).Info("target is not a field", "path", target)
		return nil, nil
	}
	isGroup, err := c.client.IsGroup(ctx, target)
	if err != nil {
		return nil, err
	}
	if !isGroup {
		leaf, err := c.client.ReadLeaf(ctx, target, true)
		if err != nil {
			return nil, err
		}
		return &Result{Leaf: &leaf, LeafPath: target}, nil
	}

	l, err := c.renderer.Render(ctx, target, "")
	if err != nil {
		return nil, err
	}

	// All provider calls succeeded; commit. Reaching the path the history
	// top recorded counts as a replay regardless of the route taken;
	// reaching anything else discards the stack.
	cursor := l.DefaultCursor
	c.state.invalidateIfBranch(target)
	if e, ok := c.state.pop(); ok {
		cursor = clampCursor(e.Cursor, l)
	}
	c.state.current = target
	return &Result{View: &View{Listing: l, Cursor: cursor}}, nil
}

// Ascend moves to the parent group and lands the cursor on the group
// just departed. At the root it is a no-op and performs no provider
// call. cursorNow is the caller's current cursor, recorded for a later
// Forward replay.
func (c *Controller) Ascend(ctx context.Context, cursorNow int) (*Result, error) {
	if c.state.current == hpath.Root {
		return nil, nil
	}
	departed := hpath.Base(c.state.current)
	parent := hpath.Dir(c.state.current)

	l, err := c.renderer.Render(ctx, parent, departed+"/")
	if err != nil {
		return nil, err
	}

	c.state.push(c.state.current, cursorNow)
	c.state.parentGroup = departed
	c.state.current = parent
	return &Result{View: &View{Listing: l, Cursor: l.DefaultCursor}}, nil
}

// Refresh re-renders the current node, keeping the cursor where it was
// as far as the new listing allows.
func (c *Controller) Refresh(ctx context.Context, cursorNow int) (*View, error) {
	l, err := c.renderer.Render(ctx, c.state.current, "")
	if err != nil {
		return nil, err
	}
	return &View{Listing: l, Cursor: clampCursor(cursorNow, l)}, nil
}

// Preview fetches the truncated contents of the named leaf without
// navigating. Unknown names are a no-op.
func (c *Controller) Preview(ctx context.Context, name string) (*Result, error) {
	target := hpath.Join(c.state.current, name)
	ok, err := c.client.IsField(ctx, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	leaf, err := c.client.ReadLeaf(ctx, target, false)
	if err != nil {
		return nil, err
	}
	return &Result{Leaf: &leaf, LeafPath: target}, nil
}

// CopyTarget resolves the row under the cursor to its normalized path
// and classifies it: attributes are not fields, so a failed existence
// probe marks an attribute.
func (c *Controller) CopyTarget(ctx context.Context, row listing.Row) (path string, isAttr bool, err error) {
	target := hpath.Join(c.state.current, row.Name)
	ok, err := c.client.IsField(ctx, target)
	if err != nil {
		return "", false, err
	}
	return target, !ok, nil
}

func clampCursor(cursor int, l *listing.Listing) int {
	if len(l.Rows) == 0 {
		return -1
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= len(l.Rows) {
		return len(l.Rows) - 1
	}
	return cursor
}
