package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/danishansari-dev/scrunchcreate/internal/state"
)

type AccountHandler struct {
	KV           state.KV
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *AccountHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "signup.html")
}

func (h *AccountHandler) SignInForm(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "signin.html")
}

func (h *AccountHandler) renderAuthPage(w http.ResponseWriter, r *http.Request, page string) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()

	if st.auth.Current() != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get(page)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"CartCount": st.cart.TotalItems(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if name == "" || email == "" || len(password) < 6 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name, email and a password of at least 6 characters are required."})
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	if err := st.auth.SignUp(name, email, password); err != nil {
		if errors.Is(err, state.ErrEmailTaken) {
			session.AddFlash(FlashMessage{Type: "error", Message: "An account with that email already exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Could not create your account. Please try again."})
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + name + "!"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if err := st.auth.SignIn(email, password); err != nil {
		// Same message for unknown email and wrong password.
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid email or password."})
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Signed in."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	scope, session := visitorScope(h.SessionStore, w, r)
	st := openStores(h.KV, scope)
	defer st.close()
	defer session.Save(r, w)

	st.auth.SignOut()
	session.AddFlash(FlashMessage{Type: "success", Message: "Signed out."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
