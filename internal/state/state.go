// Package state holds the visitor-facing state containers: cart, wishlist,
// and auth. Each is a plain in-memory structure with subscribe/notify
// semantics, persisted as a versioned JSON snapshot into a key-value slot.
// The containers know nothing about HTTP; handlers construct them per
// visitor scope.
package state

import (
	"encoding/json"
	"log/slog"
)

// KV is the persistence surface the containers write their snapshots to.
// The SQLite store implements it; tests use an in-memory map.
type KV interface {
	// Get returns nil, nil for a missing slot.
	Get(scope, slot string) ([]byte, error)
	Set(scope, slot string, payload []byte) error
	// Watch observes external writes to a slot and returns a cancel func.
	Watch(scope, slot string, fn func(payload []byte)) func()
}

// SchemaVersion tags every persisted snapshot so future shape changes can
// migrate old payloads instead of guessing at them.
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// loadSlot reads a slot into out. Missing or malformed payloads leave out
// untouched so the caller starts from its empty state. Pre-envelope payloads
// (version 0: a bare JSON value) are migrated by reading them directly.
func loadSlot(kv KV, scope, slot string, out any) {
	payload, err := kv.Get(scope, slot)
	if err != nil || len(payload) == 0 {
		return
	}
	decode(payload, out)
}

func decode(payload []byte, out any) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil && env.Version >= 1 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			slog.Warn("discarding malformed state snapshot", "error", err)
		}
		return
	}
	// version 0: payload predates the envelope
	if err := json.Unmarshal(payload, out); err != nil {
		slog.Warn("discarding unreadable state snapshot", "error", err)
	}
}

// saveSlot persists a snapshot. Write failures are logged and swallowed:
// state then simply fails to survive a restart, which beats failing the
// user's action.
func saveSlot(kv KV, scope, slot string, in any) {
	data, err := json.Marshal(in)
	if err != nil {
		slog.Warn("failed to encode state snapshot", "slot", slot, "error", err)
		return
	}
	payload, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		slog.Warn("failed to encode state envelope", "slot", slot, "error", err)
		return
	}
	if err := kv.Set(scope, slot, payload); err != nil {
		slog.Warn("failed to persist state snapshot", "slot", slot, "error", err)
	}
}

// subscribers is the shared observer list. Notify runs synchronously in the
// mutating call.
type subscribers struct {
	nextID int
	fns    map[int]func()
}

func (s *subscribers) add(fn func()) func() {
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn
	return func() { delete(s.fns, id) }
}

func (s *subscribers) notify() {
	for _, fn := range s.fns {
		fn()
	}
}
