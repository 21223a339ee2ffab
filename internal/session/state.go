// Package session owns the navigation state machine of one browsing
// session: the current node path, the cursor-restoration name used on
// ascent, and the forward-history stack. One session exists per opened
// container and nothing outside the Controller mutates its State.
package session

import "github.com/oakwood-commons/h5x/internal/hpath"

// historyEntry records where the user ascended from, so a forward step
// can put them back on the exact row they left.
type historyEntry struct {
	Path   string
	Cursor int
}

// State holds the mutable navigation data of one session. The forward
// stack is most-recent-push-first and is only valid for replay while the
// user keeps retracing it: any navigation to a path other than the top
// entry discards the whole stack. Stale entries are strictly worse than
// no history.
type State struct {
	current     string
	parentGroup string
	stack       []historyEntry
}

// NewState returns the state of a freshly opened container: current path
// at the root, no history.
func NewState() *State {
	return &State{current: hpath.Root}
}

// Current returns the path of the node currently displayed.
func (s *State) Current() string { return s.current }

// Depth returns the number of forward-history entries.
func (s *State) Depth() int { return len(s.stack) }

func (s *State) push(path string, cursor int) {
	s.stack = append(s.stack, historyEntry{Path: path, Cursor: cursor})
}

func (s *State) pop() (historyEntry, bool) {
	if len(s.stack) == 0 {
		return historyEntry{}, false
	}
	e := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return e, true
}

func (s *State) top() (historyEntry, bool) {
	if len(s.stack) == 0 {
		return historyEntry{}, false
	}
	return s.stack[len(s.stack)-1], true
}

// invalidateIfBranch clears the stack unless the top entry records
// exactly target. Destination equality is what counts, not the route
// taken to it.
func (s *State) invalidateIfBranch(target string) {
	if e, ok := s.top(); !ok || e.Path != target {
		s.stack = nil
	}
}
