package store

// Index maps every state observed during a run to the handle of its frame.
type Index[StateType comparable] struct {
	handles map[StateType]Handle
}

// NewIndex returns an empty index.
func NewIndex[StateType comparable]() *Index[StateType] {
	return &Index[StateType]{handles: make(map[StateType]Handle)}
}

// LookupOrReserve returns the handle stored for state. On first sight the
// state is bound to next and wasNew is true; the caller must then allocate
// the frame so that it lands on next.
func (index *Index[StateType]) LookupOrReserve(state StateType, next Handle) (handle Handle, wasNew bool) {
	if existing, ok := index.handles[state]; ok {
		return existing, false
	}
	index.handles[state] = next
	return next, true
}

// Lookup returns the handle of state, or NoHandle if it was never seen.
func (index *Index[StateType]) Lookup(state StateType) Handle {
	return index.handles[state]
}

// Len returns the number of distinct states recorded.
func (index *Index[StateType]) Len() int {
	return len(index.handles)
}
