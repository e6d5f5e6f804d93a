package observe

import (
	"errors"
	"time"

	settings "github.com/goliatone/go-settings"
)

// Op classifies what an event describes.
type Op string

const (
	// OpRead records an access at the current revision.
	OpRead Op = "read"
	// OpWrite records a mutation that bumped the revision.
	OpWrite Op = "write"
	// OpRemove records a deletion that bumped the revision.
	OpRemove Op = "remove"
)

// Event describes one access or mutation seen by an Observable.
type Event struct {
	ID         string
	Op         Op
	Key        string
	Location   settings.Location
	Revision   uint64
	OccurredAt time.Time
}

// Hook receives events from an Observable.
type Hook interface {
	Notify(event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(event Event) error {
	if fn == nil {
		return nil
	}
	return fn(event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Notify forwards the event to all hooks, returning a joined error if any
// fail.
func (h Hooks) Notify(event Event) error {
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
