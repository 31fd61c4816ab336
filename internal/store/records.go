// Package store holds the search nodes of a single search run: an
// append-only frame store addressed by handles and the state index used to
// detect duplicates.
package store

import "fmt"

// Handle identifies a Frame inside Records. Handles are never reused.
type Handle int

const (
	// NoHandle marks an unseen state or a frame without predecessor.
	NoHandle Handle = 0
	// RootHandle is the dummy frame allocated by NewRecords so that the
	// first genuine frame receives handle 2.
	RootHandle Handle = 1
)

// pageSize is the number of frames per page. Pages are never moved once
// allocated, so a *Frame returned by Get stays valid across Allocate calls.
const pageSize = 1024

// Frame is one discovered state together with the best path known to reach it.
type Frame[StateType comparable, ActionType any] struct {
	State       StateType
	Action      ActionType
	HasAction   bool
	Predecessor Handle
	Depth       int
	G           float64
	H           float64
	Closed      bool
}

// Records is the append-only frame store of one search run.
type Records[StateType comparable, ActionType any] struct {
	pages [][]Frame[StateType, ActionType]
	size  int
}

// NewRecords creates a store holding only the reserved slot 0 and the
// closed dummy root frame.
func NewRecords[StateType comparable, ActionType any]() *Records[StateType, ActionType] {
	records := &Records[StateType, ActionType]{}
	records.Allocate(Frame[StateType, ActionType]{Closed: true}) // slot 0, never addressed
	records.Allocate(Frame[StateType, ActionType]{Closed: true}) // dummy root
	return records
}

// Allocate appends a frame and returns its handle.
func (records *Records[StateType, ActionType]) Allocate(frame Frame[StateType, ActionType]) Handle {
	if records.size%pageSize == 0 {
		records.pages = append(records.pages, make([]Frame[StateType, ActionType], 0, pageSize))
	}
	last := len(records.pages) - 1
	records.pages[last] = append(records.pages[last], frame)
	handle := Handle(records.size)
	records.size++
	return handle
}

// Get returns the frame for handle. It panics on a handle that was never
// allocated, which can only be a bug in the caller.
func (records *Records[StateType, ActionType]) Get(handle Handle) *Frame[StateType, ActionType] {
	if handle <= NoHandle || int(handle) >= records.size {
		panic(fmt.Sprintf("store: unknown frame handle %d (size %d)", handle, records.size))
	}
	return &records.pages[int(handle)/pageSize][int(handle)%pageSize]
}

// Next returns the handle the next Allocate call will return.
func (records *Records[StateType, ActionType]) Next() Handle {
	return Handle(records.size)
}

// Len returns the number of allocated frames, including the dummy root.
func (records *Records[StateType, ActionType]) Len() int {
	return records.size - 1
}
