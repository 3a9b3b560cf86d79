// Package credential keeps the broker token and account id current across
// ticks, falling back to the last good value when a refresh fails.
package credential

import (
	"github.com/moznion/go-optional"
)

// Status is the outcome of one refresh attempt.
type Status int

const (
	// Unavailable means the fetch failed and no previous value exists.
	Unavailable Status = iota
	// Fresh means the value was fetched this attempt.
	Fresh
	// Stale means the fetch failed and the previous value was kept.
	Stale
)

func (s Status) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unavailable"
	}
}

// Refreshed is a value together with how it was obtained.
// Err is set for Stale and Unavailable.
type Refreshed[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Ok reports whether Value is usable.
func (r Refreshed[T]) Ok() bool {
	return r.Status != Unavailable
}

// Refresh runs fetch once and degrades to previous on failure.
func Refresh[T any](previous optional.Option[T], fetch func() (T, error)) Refreshed[T] {
	v, err := fetch()
	if err == nil {
		return Refreshed[T]{Status: Fresh, Value: v}
	}
	if previous.IsSome() {
		return Refreshed[T]{Status: Stale, Value: previous.Unwrap(), Err: err}
	}
	var zero T
	return Refreshed[T]{Status: Unavailable, Value: zero, Err: err}
}
