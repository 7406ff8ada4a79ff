package state

import (
	"slices"
	"sync"
	"sync/atomic"
)

const wishlistSlot = "wishlist"

// Wishlist is a set of product ids with insertion order preserved for
// display. It additionally observes the persistence layer, so a second
// container on the same scope (another tab, in browser terms) picks up
// external writes.
type Wishlist struct {
	mu      sync.Mutex
	kv      KV
	scope   string
	ids     []string
	subs    subscribers
	writing atomic.Bool
	cancel  func()
}

// NewWishlist rehydrates the wishlist and subscribes to external changes on
// the same slot. Call Close when done to detach the watcher.
func NewWishlist(kv KV, scope string) *Wishlist {
	w := &Wishlist{kv: kv, scope: scope}
	loadSlot(kv, scope, wishlistSlot, &w.ids)
	w.cancel = kv.Watch(scope, wishlistSlot, w.external)
	return w
}

// Close detaches the external-change watcher.
func (w *Wishlist) Close() {
	if w.cancel != nil {
		w.cancel()
	}
}

// external reloads state written by another container on the same scope.
// Own writes are ignored via the writing flag, which also keeps the
// synchronous watch callback from re-entering the held lock.
func (w *Wishlist) external(payload []byte) {
	if w.writing.Load() {
		return
	}
	w.mu.Lock()
	var ids []string
	if len(payload) > 0 {
		decode(payload, &ids)
	}
	w.ids = ids
	w.mu.Unlock()
	w.subs.notify()
}

func (w *Wishlist) Toggle(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := slices.Index(w.ids, id); i >= 0 {
		w.ids = append(w.ids[:i], w.ids[i+1:]...)
	} else {
		w.ids = append(w.ids, id)
	}
	w.persist()
}

func (w *Wishlist) Add(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if slices.Contains(w.ids, id) {
		return
	}
	w.ids = append(w.ids, id)
	w.persist()
}

func (w *Wishlist) Remove(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := slices.Index(w.ids, id); i >= 0 {
		w.ids = append(w.ids[:i], w.ids[i+1:]...)
		w.persist()
	}
}

func (w *Wishlist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids = nil
	w.persist()
}

func (w *Wishlist) Contains(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.ids, id)
}

// IDs returns the wishlist in insertion order.
func (w *Wishlist) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ids)
}

func (w *Wishlist) Subscribe(fn func()) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.subs.add(fn)
}

// persist must run with the lock held.
func (w *Wishlist) persist() {
	w.writing.Store(true)
	saveSlot(w.kv, w.scope, wishlistSlot, w.ids)
	w.writing.Store(false)
	w.subs.notify()
}
