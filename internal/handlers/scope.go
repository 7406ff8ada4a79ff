package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/danishansari-dev/scrunchcreate/internal/state"
)

const (
	visitorSessionName = "sc-session"
	scopeKey           = "scope_id"
)

// visitorScope returns the stable per-browser scope id that keys this
// visitor's cart/wishlist/session slots, minting one on first contact.
func visitorScope(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request) (string, *sessions.Session) {
	session, _ := store.Get(r, visitorSessionName)
	if id, ok := session.Values[scopeKey].(string); ok && id != "" {
		return id, session
	}
	id := uuid.NewString()
	session.Values[scopeKey] = id
	session.Save(r, w)
	return id, session
}

// stores bundles the per-visitor state containers handlers work with.
type stores struct {
	scope    string
	cart     *state.Cart
	wishlist *state.Wishlist
	auth     *state.Auth
}

func openStores(kv state.KV, scope string) *stores {
	return &stores{
		scope:    scope,
		cart:     state.NewCart(kv, scope),
		wishlist: state.NewWishlist(kv, scope),
		auth:     state.NewAuth(kv, scope),
	}
}

func (s *stores) close() {
	s.wishlist.Close()
}
