// Package plansearch provides a generic best-first (A*) search core for
// state-space planners.
//
// It exposes two main entry points:
//
//   - Engine.Plan: run the search to completion and get a Result.
//   - Engine.NewStepper: advance the search one accepted frame at a time to
//     drive UIs or debugging tools.
//
// The engine is generic over state and action types. Problems, successor
// generators, heuristics and the open list are supplied by the caller through
// small interfaces; HeapOpenList is a ready-made open list.
//
// A search keeps at most one frame per distinct state. Cheaper paths found
// for a known state update its frame in place and re-queue it; stale queue
// entries are dropped when popped. States whose heuristic value is DeadEnd
// are recorded but never queued or expanded.
package plansearch
