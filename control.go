package plansearch

import (
	"sync"
	"sync/atomic"
)

// ProgressHandler is called synchronously on the search goroutine each time
// the search reaches a new f-value layer. A slow handler stalls the search.
type ProgressHandler func()

// Statistics is a snapshot of the search counters.
type Statistics struct {
	Expanded  int
	Generated int
	Evaluated int
	MaxDepth  int
	MaxG      float64
	MaxF      float64
}

// Map returns the snapshot keyed by the conventional planner statistic names.
func (statistics Statistics) Map() map[string]any {
	return map[string]any{
		"expanded":    statistics.Expanded,
		"generated":   statistics.Generated,
		"evaluated":   statistics.Evaluated,
		"max_depth":   statistics.MaxDepth,
		"max_g_value": statistics.MaxG,
		"max_f_value": statistics.MaxF,
	}
}

// Control carries the cross-cutting state of a search: the abort flag, the
// progress handlers and the last statistics snapshot. Abort and Statistics
// may be called from any goroutine.
type Control struct {
	abort atomic.Bool

	mu       sync.RWMutex
	handlers []ProgressHandler
	snapshot Statistics
	hasStats bool
}

// Abort asks the running search to stop. The request is checked once per
// accepted frame and stays set until ResetAbort.
func (control *Control) Abort() {
	control.abort.Store(true)
}

// ResetAbort clears a previous Abort request.
func (control *Control) ResetAbort() {
	control.abort.Store(false)
}

// Aborted reports whether an abort was requested.
func (control *Control) Aborted() bool {
	return control.abort.Load()
}

// RegisterHandler appends a progress handler. Handlers run in registration
// order.
func (control *Control) RegisterHandler(handler ProgressHandler) {
	control.mu.Lock()
	defer control.mu.Unlock()
	control.handlers = append(control.handlers, handler)
}

// Statistics returns the snapshot taken at the most recent layer boundary.
// ok is false when no snapshot was taken since the last search started.
func (control *Control) Statistics() (statistics Statistics, ok bool) {
	control.mu.RLock()
	defer control.mu.RUnlock()
	return control.snapshot, control.hasStats
}

func (control *Control) clearStatistics() {
	control.mu.Lock()
	control.snapshot = Statistics{}
	control.hasStats = false
	control.mu.Unlock()
}

// publish stores a snapshot and runs the handlers outside the lock so they
// can read Statistics or call Abort.
func (control *Control) publish(statistics Statistics) {
	control.mu.Lock()
	control.snapshot = statistics
	control.hasStats = true
	handlers := append([]ProgressHandler(nil), control.handlers...)
	control.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}
