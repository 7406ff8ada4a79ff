package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danishansari-dev/scrunchcreate/internal/filter"
	"github.com/danishansari-dev/scrunchcreate/internal/models"
	"github.com/danishansari-dev/scrunchcreate/internal/repository"
)

// memKV is an in-memory persistence stand-in. It ignores watchers; the
// handlers under test never observe cross-context writes.
type memKV struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{slots: make(map[string][]byte)}
}

func (m *memKV) Get(scope, slot string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[scope+"/"+slot], nil
}

func (m *memKV) Set(scope, slot string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[scope+"/"+slot] = payload
	return nil
}

func (m *memKV) Watch(scope, slot string, fn func(payload []byte)) func() {
	return func() {}
}

// slot returns the single stored payload for a slot name, regardless of
// which visitor scope wrote it. Tests run one visitor at a time.
func (m *memKV) slot(t *testing.T, slot string) []byte {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, payload := range m.slots {
		if strings.HasSuffix(key, "/"+slot) {
			return payload
		}
	}
	return nil
}

func (m *memKV) cartItems(t *testing.T, slot string) []models.CartItem {
	t.Helper()
	payload := m.slot(t, slot)
	if payload == nil {
		return nil
	}
	var env struct {
		Version int             `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &env))
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	return items
}

func testRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.New([]models.Product{
		{
			ID: "tulip-scrunchie-pink", Slug: "tulip-scrunchie-pink",
			Name: "Tulip Scrunchie Pink", Category: "Scrunchie", Type: "Tulip",
			Color: "Pink", NormalizedColor: "pink",
			Images: []string{"/assets/products/scrunchie/tulip/pink/1.jpg"},
			OfferPrice: 69, OriginalPrice: 89,
		},
		{
			ID: "satin-hairbow-wine", Slug: "satin-hairbow-wine",
			Name: "Satin Hairbow Wine", Category: "Hairbow", Type: "Satin",
			Color: "Wine", NormalizedColor: "wine",
			Images: []string{"/assets/products/hairbow/satin/wine/1.jpg"},
			OfferPrice: 79, OriginalPrice: 99,
		},
	})
}

// writeTemplates drops minimal templates so render paths have something to
// execute. Handler tests assert on state and redirects, not markup.
func writeTemplates(t *testing.T) *TemplateCache {
	t.Helper()
	dir := t.TempDir()
	pages := map[string]string{
		"home.html":     `home {{len .Featured}}`,
		"products.html": `products {{.Total}}`,
		"product.html":  `product {{.Product.Name}}`,
		"cart.html":     `cart {{.Total}}`,
		"wishlist.html": `wishlist {{len .Products}}`,
		"checkout.html": `checkout {{range $f, $m := .Errors}}[{{$f}}: {{$m}}]{{end}}`,
		"signin.html":   `signin`,
		"signup.html":   `signup`,
	}
	for name, body := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	tc := NewTemplateCache()
	require.NoError(t, tc.Load(dir))
	return tc
}

type env struct {
	kv        *memKV
	repo      *repository.Repository
	templates *TemplateCache
	sessions  *sessions.CookieStore
	cookies   []*http.Cookie
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return &env{
		kv:        newMemKV(),
		repo:      testRepo(t),
		templates: writeTemplates(t),
		sessions:  sessions.NewCookieStore([]byte("handlers-test-key")),
	}
}

// do runs one handler call, carrying session cookies between calls so the
// visitor scope stays stable across a test.
func (e *env) do(t *testing.T, handler http.HandlerFunc, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		e.cookies = cs
	}
	return rec
}

func TestCartAddSnapshotsProduct(t *testing.T) {
	e := newEnv(t)
	h := &CartHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	rec := e.do(t, h.Add, http.MethodPost, "/cart/add", url.Values{
		"id":  {"tulip-scrunchie-pink"},
		"qty": {"2"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))

	items := e.kv.cartItems(t, "cart")
	require.Len(t, items, 1)
	assert.Equal(t, "tulip-scrunchie-pink", items[0].ID)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, 69, items[0].Price)
	assert.Equal(t, "/assets/products/scrunchie/tulip/pink/1.jpg", items[0].Image)
}

func TestCartAddMergesByProduct(t *testing.T) {
	e := newEnv(t)
	h := &CartHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	e.do(t, h.Add, http.MethodPost, "/cart/add", url.Values{"id": {"tulip-scrunchie-pink"}, "qty": {"1"}})
	e.do(t, h.Add, http.MethodPost, "/cart/add", url.Values{"id": {"tulip-scrunchie-pink"}, "qty": {"2"}})

	items := e.kv.cartItems(t, "cart")
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Qty)
}

func TestCartAddUnknownProduct(t *testing.T) {
	e := newEnv(t)
	h := &CartHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	rec := e.do(t, h.Add, http.MethodPost, "/cart/add", url.Values{"id": {"nope"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))
	assert.Empty(t, e.kv.cartItems(t, "cart"))
}

func TestCartUpdateAndRemove(t *testing.T) {
	e := newEnv(t)
	h := &CartHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	e.do(t, h.Add, http.MethodPost, "/cart/add", url.Values{"id": {"tulip-scrunchie-pink"}, "qty": {"1"}})
	e.do(t, h.Update, http.MethodPost, "/cart/update", url.Values{"id": {"tulip-scrunchie-pink"}, "qty": {"5"}})
	items := e.kv.cartItems(t, "cart")
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)

	e.do(t, h.Remove, http.MethodPost, "/cart/remove", url.Values{"id": {"tulip-scrunchie-pink"}})
	assert.Empty(t, e.kv.cartItems(t, "cart"))
}

func TestWishlistToggle(t *testing.T) {
	e := newEnv(t)
	h := &WishlistHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	rec := e.do(t, h.Toggle, http.MethodPost, "/wishlist/toggle", url.Values{
		"id":   {"satin-hairbow-wine"},
		"back": {"/products?category=Hairbow"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products?category=Hairbow", rec.Header().Get("Location"))
	assert.Contains(t, string(e.kv.slot(t, "wishlist")), "satin-hairbow-wine")

	// second toggle removes
	e.do(t, h.Toggle, http.MethodPost, "/wishlist/toggle", url.Values{"id": {"satin-hairbow-wine"}})
	assert.NotContains(t, string(e.kv.slot(t, "wishlist")), "satin-hairbow-wine")
}

func TestWishlistToggleRejectsOffsiteRedirect(t *testing.T) {
	e := newEnv(t)
	h := &WishlistHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	for _, back := range []string{"https://example.com/x", "//example.com", ""} {
		rec := e.do(t, h.Toggle, http.MethodPost, "/wishlist/toggle", url.Values{
			"id":   {"satin-hairbow-wine"},
			"back": {back},
		})
		assert.Equal(t, "/wishlist", rec.Header().Get("Location"), "back=%q", back)
	}
}

func TestProductDetailUnknownSlug(t *testing.T) {
	e := newEnv(t)
	h := &ShopHandler{Repo: e.repo, Engine: filter.NewEngine(e.repo.GetAll()), KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{slug}", h.ProductDetail)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignUpSignOutSignIn(t *testing.T) {
	e := newEnv(t)
	h := &AccountHandler{KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	rec := e.do(t, h.SignUp, http.MethodPost, "/signup", url.Values{
		"name": {"Asha"}, "email": {"asha@example.com"}, "password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.NotNil(t, e.kv.slot(t, "session"))

	rec = e.do(t, h.SignOut, http.MethodPost, "/signout", nil)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = e.do(t, h.SignIn, http.MethodPost, "/signin", url.Values{
		"email": {"asha@example.com"}, "password": {"wrong"},
	})
	assert.Equal(t, "/signin", rec.Header().Get("Location"))

	rec = e.do(t, h.SignIn, http.MethodPost, "/signin", url.Values{
		"email": {"Asha@Example.com"}, "password": {"secret1"},
	})
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	e := newEnv(t)
	h := &AccountHandler{KV: e.kv, Templates: e.templates, SessionStore: e.sessions}

	rec := e.do(t, h.SignUp, http.MethodPost, "/signup", url.Values{
		"name": {"Asha"}, "email": {"asha@example.com"}, "password": {"abc"},
	})
	assert.Equal(t, "/signup", rec.Header().Get("Location"))
	assert.Nil(t, e.kv.slot(t, "users"))
}

type recordedOrders struct {
	orders []*models.Order
}

func (r *recordedOrders) CreateOrder(order *models.Order) error {
	r.orders = append(r.orders, order)
	return nil
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	e := newEnv(t)
	h := &CheckoutHandler{KV: e.kv, Templates: e.templates, SessionStore: e.sessions, WhatsAppNumber: "911234567890"}

	rec := e.do(t, h.Form, http.MethodGet, "/checkout", nil)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))

	rec = e.do(t, h.Submit, http.MethodPost, "/checkout", url.Values{})
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
}

func TestCheckoutValidationRerenders(t *testing.T) {
	e := newEnv(t)
	cart := &CartHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}
	e.do(t, cart.Add, http.MethodPost, "/cart/add", url.Values{"id": {"tulip-scrunchie-pink"}, "qty": {"1"}})

	h := &CheckoutHandler{KV: e.kv, Templates: e.templates, SessionStore: e.sessions, WhatsAppNumber: "911234567890"}
	rec := e.do(t, h.Submit, http.MethodPost, "/checkout", url.Values{
		"name":  {"Asha"},
		"phone": {"12345"}, // not 10 digits
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
	// cart survives a failed submit
	assert.Len(t, e.kv.cartItems(t, "cart"), 1)
}

func TestCheckoutSubmitRecordsAndRedirects(t *testing.T) {
	e := newEnv(t)
	cart := &CartHandler{Repo: e.repo, KV: e.kv, Templates: e.templates, SessionStore: e.sessions}
	e.do(t, cart.Add, http.MethodPost, "/cart/add", url.Values{"id": {"tulip-scrunchie-pink"}, "qty": {"2"}})

	orders := &recordedOrders{}
	h := &CheckoutHandler{KV: e.kv, Orders: orders, Templates: e.templates, SessionStore: e.sessions, WhatsAppNumber: "911234567890"}

	rec := e.do(t, h.Submit, http.MethodPost, "/checkout", url.Values{
		"name":         {"Asha Verma"},
		"phone":        {"9876543210"},
		"email":        {"asha@example.com"},
		"addressLine1": {"12 Rose Lane"},
		"city":         {"Pune"},
		"state":        {"Maharashtra"},
		"pincode":      {"411001"},
		"country":      {"India"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://wa.me/911234567890?text="), location)
	assert.Contains(t, location, "%20")
	assert.NotContains(t, location, "+")

	require.Len(t, orders.orders, 1)
	order := orders.orders[0]
	assert.Equal(t, "received", order.Status)
	assert.Equal(t, 138, order.Subtotal)
	assert.Equal(t, 49, order.DeliveryFee)
	assert.Equal(t, 187, order.Total)
	assert.Contains(t, order.ItemsJSON, "tulip-scrunchie-pink")
	assert.Len(t, order.OrderRef, 8)

	// cart cleared after handoff
	assert.Empty(t, e.kv.cartItems(t, "cart"))
}
