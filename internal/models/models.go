package models

// Product is one purchasable catalog entry, derived from a leaf folder in the
// product image tree. Records are immutable once the catalog is built; a
// rescan regenerates the whole list.
type Product struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Type            string   `json:"type,omitempty"`
	Color           string   `json:"color,omitempty"`
	NormalizedColor string   `json:"normalizedColor,omitempty"`
	ColorSwatch     string   `json:"colorSwatch,omitempty"`
	Images          []string `json:"images"`

	OfferPrice      int `json:"offerPrice"`
	OriginalPrice   int `json:"originalPrice"`
	DiscountPercent int `json:"discountPercent"`

	// Derived by the repository at load time, not persisted in products.json.
	PrimaryImage    string    `json:"-"`
	AvailableColors []string  `json:"-"`
	Variants        []Variant `json:"-"`
}

// Variant is a sibling product of the same category and type in a different
// color. The filter engine swaps in variant images when a color filter
// matches a sibling rather than the product itself.
type Variant struct {
	Slug            string
	Color           string
	NormalizedColor string
	Images          []string
}

// CartItem is a snapshot of the product at add-time plus a quantity. Cart
// items are copies, not live references; a later catalog price change does
// not touch items already in the cart.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	Color    string `json:"color,omitempty"`
	Image    string `json:"image,omitempty"`
	Price    int    `json:"price"`
	Qty      int    `json:"qty"`
}

// User is a stored shopper account. Password holds a bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the signed-in snapshot kept in the per-visitor session slot.
// It deliberately omits the password hash.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Order is the snapshot recorded before the WhatsApp handoff. The handoff
// itself is fire-and-forget; this row exists for operator review only.
type Order struct {
	ID            int
	OrderRef      string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	ItemsJSON     string
	Subtotal      int
	DeliveryFee   int
	Total         int
	Status        string
	CreatedAt     string
}
