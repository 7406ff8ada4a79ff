// Package pricing resolves offer and list prices from an ordered,
// data-only rule table. Matching is purely structural: category, type,
// color, and an explicit pack size. The list price is derived from the
// offer price via a per-category markup and rounded up to a price ending
// in 9 (under 500) or 99 (500 and above).
package pricing

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danishansari-dev/scrunchcreate/internal/colors"
)

// Match holds the structural keys a rule is matched on. Zero-valued fields
// are wildcards.
type Match struct {
	Category string `json:"category"`
	Type     string `json:"type,omitempty"`
	Color    string `json:"color,omitempty"`
	PackSize int    `json:"packSize,omitempty"`
}

// Rule is one entry in the ordered price table.
type Rule struct {
	Match       Match  `json:"match"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// Query identifies a product for price resolution.
type Query struct {
	Category string
	Type     string
	Color    string
	PackSize int
}

// Quote is the computed price triple for a product.
type Quote struct {
	OfferPrice      int
	OriginalPrice   int
	DiscountPercent int
}

// typeAliases folds folder-name variants of a type into the token the rule
// table uses.
var typeAliases = map[string]string{
	"jimmy-choo":    "jimmychoo",
	"satin-princes": "satin-princess",
	"satin-hampers": "satin-hamper",
}

// Resolver evaluates an ordered rule list. The zero value is unusable; use
// New or Default.
type Resolver struct {
	rules []Rule
	log   *slog.Logger
}

// New builds a resolver over an explicit rule list. Rules are evaluated in
// the given order, first match wins.
func New(rules []Rule, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{rules: rules, log: log}
}

// Default returns a resolver over the built-in rule table.
func Default() *Resolver {
	return New(Rules, slog.Default())
}

// Resolve computes the price triple for a product. It is total: an
// unmatched query falls back to FallbackPrice and is logged for review
// rather than failing or pricing the item at zero.
func (r *Resolver) Resolve(q Query) Quote {
	offer, _, matched := r.match(q)
	if !matched {
		r.log.Warn("no pricing rule matched, using fallback",
			"category", q.Category, "type", q.Type, "color", q.Color)
		offer = FallbackPrice
	}
	if offer <= 0 {
		offer = FallbackPrice
	}

	original := listPrice(offer, CategoryKey(q.Category))
	discount := 0
	if original > offer {
		discount = int(decimal.NewFromInt(int64(original - offer)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(original))).
			Round(0).IntPart())
	}
	return Quote{OfferPrice: offer, OriginalPrice: original, DiscountPercent: discount}
}

// Describe returns the description of the rule a query matches, or "" when
// only the fallback applies. Useful for the operator CLI.
func (r *Resolver) Describe(q Query) string {
	_, desc, matched := r.match(q)
	if !matched {
		return ""
	}
	return desc
}

func (r *Resolver) match(q Query) (price int, description string, ok bool) {
	cat := CategoryKey(q.Category)
	typ := TypeKey(q.Type)
	col := colors.Normalize(q.Color)

	for _, rule := range r.rules {
		m := rule.Match
		if m.Category != "" && m.Category != cat {
			continue
		}
		if m.Type != "" && m.Type != typ {
			continue
		}
		if m.Color != "" && m.Color != col {
			continue
		}
		if m.PackSize != 0 && m.PackSize != q.PackSize {
			continue
		}
		return rule.Price, rule.Description, true
	}
	return 0, "", false
}

// listPrice applies the category markup to the offer price and rounds up to
// the nearest price ending in 9 (under 500) or 99 (500 and above). Division
// runs on decimals so 40/(1-0.20) lands exactly on 50, not 49.999....
func listPrice(offer int, categoryKey string) int {
	markup, ok := markups[categoryKey]
	if !ok {
		markup = defaultMarkup
	}
	raw := decimal.NewFromInt(int64(offer)).
		Div(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(markup)))

	if raw.LessThan(decimal.NewFromInt(500)) {
		return int(raw.Div(decimal.NewFromInt(10)).Ceil().IntPart())*10 - 1
	}
	return int(raw.Div(decimal.NewFromInt(100)).Ceil().IntPart())*100 - 1
}

// CategoryKey folds a category label to the rule-table key: lowercase with
// all separators removed, so "Gift Hamper" and "GiftHamper" both key as
// "gifthamper".
func CategoryKey(category string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(category) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TypeKey folds a type label to the rule-table token: hyphenated lowercase
// with trailing "bow"/"bows" words dropped, so the folders "Satin Tulip
// Bows" and "Satin princes Bow" key as "satin-tulip" and "satin-princess".
func TypeKey(typ string) string {
	t := colors.Token(typ)
	t = strings.TrimSuffix(t, "-bows")
	t = strings.TrimSuffix(t, "-bow")
	if alias, ok := typeAliases[t]; ok {
		return alias
	}
	return t
}
