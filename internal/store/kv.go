package store

import (
	"database/sql"
	"sync"
)

// Get reads one state slot. A missing slot returns nil, nil so callers can
// degrade to an empty initial state.
func (s *Store) Get(scope, slot string) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRow(
		`SELECT payload FROM kv_state WHERE scope = ? AND slot = ?`,
		scope, slot,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Set writes one state slot and notifies watchers of the same (scope, slot).
// Watchers fire synchronously after a successful write; the caller's own
// watcher is distinguished by the token it registered with.
func (s *Store) Set(scope, slot string, payload []byte) error {
	_, err := s.DB.Exec(`
		INSERT INTO kv_state (scope, slot, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (scope, slot) DO UPDATE
		SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, scope, slot, payload)
	if err != nil {
		return err
	}
	s.watchers.notify(scope, slot, payload)
	return nil
}

// Delete removes one state slot.
func (s *Store) Delete(scope, slot string) error {
	_, err := s.DB.Exec(`DELETE FROM kv_state WHERE scope = ? AND slot = ?`, scope, slot)
	if err != nil {
		return err
	}
	s.watchers.notify(scope, slot, nil)
	return nil
}

// Watch registers fn to run whenever the slot changes, mirroring the browser
// storage-event pattern: a second context observing the same scope sees the
// first one's writes. Returns a cancel func.
func (s *Store) Watch(scope, slot string, fn func(payload []byte)) func() {
	return s.watchers.add(scope, slot, fn)
}

type watchKey struct{ scope, slot string }

type watchRegistry struct {
	mu     sync.Mutex
	nextID int
	subs   map[watchKey]map[int]func([]byte)
}

func newWatchRegistry() *watchRegistry {
	return &watchRegistry{subs: make(map[watchKey]map[int]func([]byte))}
}

func (w *watchRegistry) add(scope, slot string, fn func([]byte)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := watchKey{scope, slot}
	if w.subs[key] == nil {
		w.subs[key] = make(map[int]func([]byte))
	}
	id := w.nextID
	w.nextID++
	w.subs[key][id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs[key], id)
	}
}

func (w *watchRegistry) notify(scope, slot string, payload []byte) {
	w.mu.Lock()
	fns := make([]func([]byte), 0, len(w.subs[watchKey{scope, slot}]))
	for _, fn := range w.subs[watchKey{scope, slot}] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(payload)
	}
}
