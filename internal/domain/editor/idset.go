package editor

import "sort"

// IDSet is an immutable set of entity identifiers. Every mutating method
// returns a fresh set and leaves the receiver untouched, so sets can be
// embedded in state snapshots and shared freely between them.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s)
}

// With returns a set that additionally contains id. The receiver is
// returned unchanged when id is already a member.
func (s IDSet) With(id string) IDSet {
	if s.Has(id) {
		return s
	}
	out := make(IDSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[id] = struct{}{}
	return out
}

// WithAll returns a set that additionally contains every given id.
func (s IDSet) WithAll(ids ...string) IDSet {
	out := s
	for _, id := range ids {
		out = out.With(id)
	}
	return out
}

// Without returns a set lacking id. The receiver is returned unchanged
// when id is not a member.
func (s IDSet) Without(id string) IDSet {
	if !s.Has(id) {
		return s
	}
	out := make(IDSet, len(s)-1)
	for k := range s {
		if k != id {
			out[k] = struct{}{}
		}
	}
	return out
}

// IDs returns the members in sorted order for stable iteration.
func (s IDSet) IDs() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
