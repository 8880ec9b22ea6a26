package state

import (
	"sort"
)

// Handle identifies a renderable registered with the scene arena. Handles
// are opaque to the store; it only tracks which ones are selected for the
// outline pass.
type Handle uint64

// Selection is the set of handles the outline pass should trace. Adds and
// removes are idempotent so mount/unmount hooks can fire without checking
// membership first.
type Selection struct {
	members map[Handle]struct{}
}

// NewSelection returns an empty selection set.
func NewSelection() *Selection {
	return &Selection{members: make(map[Handle]struct{})}
}

// Add inserts a handle. Adding a member again is a no-op.
func (s *Selection) Add(h Handle) {
	s.members[h] = struct{}{}
}

// Remove deletes a handle. Removing a non-member is a no-op.
func (s *Selection) Remove(h Handle) {
	delete(s.members, h)
}

// Contains reports whether h is selected.
func (s *Selection) Contains(h Handle) bool {
	_, ok := s.members[h]
	return ok
}

// Len returns the number of selected handles.
func (s *Selection) Len() int {
	return len(s.members)
}

// Handles returns the members as a sorted copy.
func (s *Selection) Handles() []Handle {
	out := make([]Handle, 0, len(s.members))
	for h := range s.members {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
