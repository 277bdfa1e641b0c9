package engine

import (
	"github.com/pixil98/go-adventure/internal/persist"
	"github.com/pixil98/go-adventure/internal/storage"
)

type EngineOpt func(*Engine)

// WithStore sets where Save and Restore keep snapshots.
func WithStore(s storage.Storer[*persist.Snapshot]) EngineOpt {
	return func(e *Engine) {
		e.store = s
	}
}

// WithEntryGuard makes Move refuse to enter a room whose obstacle is
// still active.
func WithEntryGuard() EngineOpt {
	return func(e *Engine) {
		e.entryGuard = true
	}
}
