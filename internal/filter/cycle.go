// Package filter holds the view state of a session: cyclic filter
// toggles, the sort order, and the pure transform that turns a registry
// snapshot into the list shown on screen.
package filter

// cycle advances current to the next value in values, wrapping at the
// end. A value not in the list restarts the cycle.
func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
