package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/danishansari-dev/scrunchcreate/internal/filter"
	"github.com/danishansari-dev/scrunchcreate/internal/models"
	"github.com/danishansari-dev/scrunchcreate/internal/repository"
	"github.com/danishansari-dev/scrunchcreate/internal/state"
)

// featuredCount caps the home page grid.
const featuredCount = 8

type ShopHandler struct {
	Repo         *repository.Repository
	Engine       *filter.Engine
	KV           state.KV
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ShopHandler) Home(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	featured := h.Repo.GetAll()
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Featured":   featured,
		"Categories": h.Repo.Categories(),
		"CartCount":  st.cart.TotalItems(),
		"User":       st.auth.Current(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) Products(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	// Filter state lives in the URL, never in the session.
	fs := filter.FromQuery(r.URL.Query())
	result := h.Engine.Apply(fs)

	wishlisted := map[string]bool{}
	for _, id := range st.wishlist.IDs() {
		wishlisted[id] = true
	}

	tmpl := h.Templates.Get("products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Products":   result.Products,
		"Total":      result.Total,
		"Facets":     result.Facets,
		"State":      fs,
		"Categories": h.Repo.Categories(),
		"Wishlisted": wishlisted,
		"CartCount":  st.cart.TotalItems(),
		"User":       st.auth.Current(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	product := h.Repo.GetBySlug(r.PathValue("slug"))
	if product == nil {
		http.NotFound(w, r)
		return
	}

	related := h.Repo.GetByCategory(product.Category)
	var others []models.Product
	for _, p := range related {
		if p.Slug != product.Slug && len(others) < 4 {
			others = append(others, p)
		}
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Product":    product,
		"Related":    others,
		"Wishlisted": st.wishlist.Contains(product.ID),
		"CartCount":  st.cart.TotalItems(),
		"User":       st.auth.Current(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
