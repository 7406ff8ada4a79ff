package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/danishansari-dev/scrunchcreate/internal/checkout"
	"github.com/danishansari-dev/scrunchcreate/internal/models"
	"github.com/danishansari-dev/scrunchcreate/internal/state"
)

// OrderRecorder persists the order snapshot taken before the WhatsApp
// redirect. The handoff succeeds even when recording fails.
type OrderRecorder interface {
	CreateOrder(order *models.Order) error
}

type CheckoutHandler struct {
	KV             state.KV
	Orders         OrderRecorder
	Templates      *TemplateCache
	SessionStore   *sessions.CookieStore
	WhatsAppNumber string
}

func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	items := st.cart.Items()
	if len(items) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	subtotal := st.cart.Subtotal()
	delivery := checkout.DeliveryFeeFor(subtotal)

	details := checkout.ShippingDetails{Country: "India"}
	if user := st.auth.Current(); user != nil {
		details.Name = user.Name
		details.Email = user.Email
	}

	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Items":     items,
		"Subtotal":  subtotal,
		"Delivery":  delivery,
		"Total":     subtotal + delivery,
		"Details":   details,
		"Errors":    map[string]string{},
		"CartCount": st.cart.TotalItems(),
		"User":      st.auth.Current(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Submit validates the shipping form, records the order and redirects the
// browser to the composed wa.me link. The cart clears only after a valid
// submit; validation failures re-render with the entered values.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	items := st.cart.Items()
	if len(items) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	details := checkout.ShippingDetails{
		Name:         r.FormValue("name"),
		Phone:        r.FormValue("phone"),
		Email:        r.FormValue("email"),
		AddressLine1: r.FormValue("addressLine1"),
		AddressLine2: r.FormValue("addressLine2"),
		City:         r.FormValue("city"),
		State:        r.FormValue("state"),
		Pincode:      r.FormValue("pincode"),
		Country:      r.FormValue("country"),
	}

	subtotal := st.cart.Subtotal()
	delivery := checkout.DeliveryFeeFor(subtotal)

	if errs := details.Validate(); len(errs) > 0 {
		tmpl := h.Templates.Get("checkout.html")
		if tmpl == nil {
			http.Error(w, "Template not found", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Items":     items,
			"Subtotal":  subtotal,
			"Delivery":  delivery,
			"Total":     subtotal + delivery,
			"Details":   details,
			"Errors":    errs,
			"CartCount": st.cart.TotalItems(),
			"User":      st.auth.Current(),
			"CsrfField": csrf.TemplateField(r),
			"Flashes":   GetFlash(session),
		}
		session.Save(r, w)
		tmpl.Execute(w, data)
		return
	}

	waURI := checkout.FormatOrder(h.WhatsAppNumber, items, subtotal, &details)

	if h.Orders != nil {
		itemsJSON, _ := json.Marshal(items)
		order := &models.Order{
			OrderRef:      checkout.NewOrderRef(),
			CustomerName:  details.Name,
			CustomerPhone: details.Phone,
			CustomerEmail: details.Email,
			Address:       details.Address(),
			ItemsJSON:     string(itemsJSON),
			Subtotal:      subtotal,
			DeliveryFee:   delivery,
			Total:         subtotal + delivery,
			Status:        "received",
		}
		if err := h.Orders.CreateOrder(order); err != nil {
			slog.Error("Failed to record order", "ref", order.OrderRef, "error", err)
		} else {
			slog.Info("Order recorded", "ref", order.OrderRef, "total", order.Total)
		}
	}

	st.cart.Clear()
	session.Save(r, w)
	http.Redirect(w, r, waURI, http.StatusSeeOther)
}
