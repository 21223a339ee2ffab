package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/h5x/internal/provider"
	"github.com/oakwood-commons/h5x/internal/provider/providertest"
)

func newTestController() (*Controller, *providertest.Fake) {
	fake := providertest.Sample()
	return NewController(fake), fake
}

func TestOpenStartsAtRoot(t *testing.T) {
	c, _ := newTestController()
	view, err := c.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/", c.Path())
	assert.Equal(t, 0, c.HistoryDepth())
	assert.Equal(t, 0, view.Cursor)
	assert.Equal(t, "g1", view.Listing.Rows[0].Name)
}

func TestDescendAscendRoundTrip(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	res, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/g1", c.Path())

	res, err = c.Ascend(ctx, res.View.Cursor)
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/", c.Path())

	// Cursor lands on the row naming the group just left, with its
	// trailing separator.
	row, ok := res.View.Listing.RowAt(res.View.Cursor)
	require.True(t, ok)
	assert.Equal(t, "g1/", row.Display())
}

func TestDescendIntoLeafOpensContentsWithoutNavigating(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)

	res, err := c.Descend(ctx, "dset1.1.1")
	require.NoError(t, err)
	require.NotNil(t, res.Leaf)
	assert.Nil(t, res.View)
	assert.Equal(t, "/g1/dset1.1.1", res.LeafPath)
	assert.Equal(t, "[0 1 2 3 4 5 6 7 8 9]", res.Leaf.Data)

	// Leaf views never move the current path or touch history.
	assert.Equal(t, "/g1", c.Path())
	assert.Equal(t, 0, c.HistoryDepth())
}

func TestDescendUnknownNameIsNoOp(t *testing.T) {
	c, fake := newTestController()
	res, err := c.Descend(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, res.View)
	assert.Nil(t, res.Leaf)
	assert.Equal(t, "/", c.Path())
	assert.Contains(t, fake.Calls, "--is-field /ghost")
}

func TestForwardReplayRestoresCursor(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	_, err = c.Ascend(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, c.HistoryDepth())

	res, err := c.Forward(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/g1", c.Path())
	assert.Equal(t, 0, res.View.Cursor)
	assert.Equal(t, 0, c.HistoryDepth())
}

func TestBranchDescendInvalidatesHistory(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	_, err = c.Ascend(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, c.HistoryDepth())

	// Branching into a different child than the one just left discards
	// the recorded entry entirely.
	_, err = c.Descend(ctx, "g2")
	require.NoError(t, err)
	assert.Equal(t, "/g2", c.Path())
	assert.Equal(t, 0, c.HistoryDepth())

	_, err = c.Ascend(ctx, 0)
	require.NoError(t, err)

	// The only replay available now is the post-branch one.
	res, err := c.Forward(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/g2", c.Path())
}

func TestJumpToSamePathCountsAsReplay(t *testing.T) {
	// Destination equality decides replay, not the route taken.
	c, _ := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	_, err = c.Ascend(ctx, 0)
	require.NoError(t, err)

	res, err := c.Jump(ctx, "/g1")
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/g1", c.Path())
	assert.Equal(t, 0, c.HistoryDepth())
}

func TestJumpResolvesRelativeAndAbsolute(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	res, err := c.Jump(ctx, "/g1")
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/g1", c.Path())

	res, err = c.Jump(ctx, "dset1.1.1")
	require.NoError(t, err)
	require.NotNil(t, res.Leaf)
	assert.Equal(t, "/g1", c.Path())
}

func TestAscendAtRootIsSilentWithNoProviderCall(t *testing.T) {
	c, fake := newTestController()
	res, err := c.Ascend(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "/", c.Path())
	assert.Equal(t, 0, c.HistoryDepth())
	assert.Empty(t, fake.Calls)
}

func TestFailedDescendLeavesStateUntouched(t *testing.T) {
	c, fake := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	_, err = c.Ascend(ctx, 0)
	require.NoError(t, err)

	fake.FailWith = &provider.ExecutionError{Output: "provider crashed"}
	_, err = c.Descend(ctx, "g1")
	var execErr *provider.ExecutionError
	require.ErrorAs(t, err, &execErr)

	// The failed transition never happened: path and history unchanged.
	assert.Equal(t, "/", c.Path())
	assert.Equal(t, 1, c.HistoryDepth())
}

func TestPreviewDoesNotNavigate(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)

	res, err := c.Preview(ctx, "dset1.1.1")
	require.NoError(t, err)
	require.NotNil(t, res.Leaf)
	assert.Equal(t, "/g1", c.Path())
	assert.Equal(t, 0, c.HistoryDepth())

	// Previewing something that vanished is a no-op, not an error.
	res, err = c.Preview(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRefreshClampsCursor(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	view, err := c.Refresh(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, len(view.Listing.Rows)-1, view.Cursor)

	view, err = c.Refresh(ctx, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Cursor)
}

func TestCopyTargetClassifiesFieldsAndAttributes(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	view, err := c.Open(ctx)
	require.NoError(t, err)

	// Row 0 is the g1 group: a field with its normalized path.
	row, _ := view.Listing.RowAt(0)
	path, isAttr, err := c.CopyTarget(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, "/g1", path)
	assert.False(t, isAttr)

	// Row 2 is the creator attribute: not a field.
	row, _ = view.Listing.RowAt(2)
	path, isAttr, err = c.CopyTarget(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, "/creator", path)
	assert.True(t, isAttr)
}

func TestEndToEndWalk(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	res, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, res.View)
	assert.Equal(t, "/g1", c.Path())

	res, err = c.Descend(ctx, "dset1.1.1")
	require.NoError(t, err)
	require.NotNil(t, res.Leaf)
	assert.Equal(t, "int", res.Leaf.Dtype)
	assert.Equal(t, "(10,)", res.Leaf.Shape)
	assert.Equal(t, "/g1", c.Path())

	res, err = c.Ascend(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "/", c.Path())
	row, ok := res.View.Listing.RowAt(res.View.Cursor)
	require.True(t, ok)
	assert.Equal(t, "g1/", row.Display())
}

func TestStateParentGroupTracksDeparture(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	_, err := c.Descend(ctx, "g1")
	require.NoError(t, err)
	_, err = c.Ascend(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "g1", c.state.parentGroup)
}
