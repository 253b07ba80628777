// Package optimistic implements the optimistic-mutation pattern shared by
// the like, follow and bookmark toggles: flip local state before the server
// confirms, roll back to the snapshot on any failure. It exists once,
// parameterized, instead of three copy-pasted try/catch bodies.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

// ErrPending is returned when a toggle fires while the previous one is
// still in flight. There is no queueing and no cancellation; the trigger
// is simply ignored.
var ErrPending = errors.New("optimistic: toggle already pending")

// Toggler runs one optimistic toggle. Its two states are Idle and Pending;
// Trigger moves Idle -> Pending, and the toggle returns to Idle whatever
// the outcome.
type Toggler[S any] struct {
	// Read returns the current local state (the pre-toggle snapshot).
	Read func() S
	// Apply computes the optimistic next state from the snapshot.
	Apply func(S) S
	// Send performs the mutating request and returns the server-confirmed
	// state. On error the snapshot is restored.
	Send func(ctx context.Context, prev S) (S, error)
	// Write stores a state locally.
	Write func(S)

	mu      sync.Mutex
	pending bool
}

// Pending reports whether a toggle is currently in flight
func (t *Toggler[S]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Trigger runs the toggle: snapshot, optimistic apply, request, then either
// confirm with the server-reported state or roll back to the snapshot.
func (t *Toggler[S]) Trigger(ctx context.Context) error {
	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return ErrPending
	}
	t.pending = true
	prev := t.Read()
	t.Write(t.Apply(prev))
	t.mu.Unlock()

	confirmed, err := t.Send(ctx, prev)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false
	if err != nil {
		t.Write(prev)
		return err
	}
	t.Write(confirmed)
	return nil
}
