package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/danishansari-dev/scrunchcreate/internal/checkout"
	"github.com/danishansari-dev/scrunchcreate/internal/models"
	"github.com/danishansari-dev/scrunchcreate/internal/repository"
	"github.com/danishansari-dev/scrunchcreate/internal/state"
)

type CartHandler struct {
	Repo         *repository.Repository
	KV           state.KV
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	subtotal := st.cart.Subtotal()
	delivery := checkout.DeliveryFeeFor(subtotal)

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Items":     st.cart.Items(),
		"Subtotal":  subtotal,
		"Delivery":  delivery,
		"Total":     subtotal + delivery,
		"CartCount": st.cart.TotalItems(),
		"User":      st.auth.Current(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Add snapshots the product into the cart. Lines merge by product id; the
// snapshot means later catalog price changes leave existing lines alone.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	product := h.Repo.GetBySlug(r.FormValue("id"))
	if product == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	qty := 1
	if q, err := strconv.Atoi(r.FormValue("qty")); err == nil && q > 0 {
		qty = q
	}

	st.cart.Add(models.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Type:     product.Type,
		Color:    product.Color,
		Image:    product.PrimaryImage,
		Price:    product.OfferPrice,
	}, qty)

	session.AddFlash(FlashMessage{Type: "success", Message: product.Name + " added to cart."})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	id := r.FormValue("id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid quantity."})
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	st.cart.SetQuantity(id, qty)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	st.cart.Remove(r.FormValue("id"))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
