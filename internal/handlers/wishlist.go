package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
	"github.com/danishansari-dev/scrunchcreate/internal/repository"
	"github.com/danishansari-dev/scrunchcreate/internal/state"
)

type WishlistHandler struct {
	Repo         *repository.Repository
	KV           state.KV
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *WishlistHandler) View(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	// Insertion order, skipping ids that fell out of the catalog.
	var products []models.Product
	for _, id := range st.wishlist.IDs() {
		if p := h.Repo.GetBySlug(id); p != nil {
			products = append(products, *p)
		}
	}

	tmpl := h.Templates.Get("wishlist.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Products":  products,
		"CartCount": st.cart.TotalItems(),
		"User":      st.auth.Current(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	id := r.FormValue("id")
	if h.Repo.GetBySlug(id) == nil {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	st.wishlist.Toggle(id)

	// only same-site paths as redirect targets
	redirect := r.FormValue("back")
	if !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") {
		redirect = "/wishlist"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
