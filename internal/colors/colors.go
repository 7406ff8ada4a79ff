// Package colors is the single source of truth for canonical color tokens.
// Raw folder names like "Hot Pink" or "metalic olive" are normalized to a
// fixed vocabulary so filtering and facet counts line up across products.
package colors

import (
	"strings"
)

// Canonical is the set of colors that appear in filter facets. Anything
// outside this list still normalizes to a token, it just isn't offered as a
// "real" color facet.
var Canonical = []string{
	"black", "white", "cream", "beige", "grey", "brown",
	"red", "wine", "maroon", "burgundy",
	"pink", "hot-pink", "baby-pink", "blush", "rose", "peach", "coral",
	"orange", "yellow", "light-yellow", "mustard", "gold",
	"green", "olive", "metallic-olive", "mint", "light-mint", "sage",
	"teal", "turquoise",
	"blue", "navy", "sky-blue", "petrol-blue", "royal-blue",
	"purple", "lavender", "lilac", "magenta",
	"pistachio", "chocolate", "silver", "multi", "combo",
}

var canonicalSet = func() map[string]bool {
	m := make(map[string]bool, len(Canonical))
	for _, c := range Canonical {
		m[c] = true
	}
	return m
}()

// aliases maps normalized raw values to their canonical form. Keys are
// already in normalized shape (lowercase, hyphenated).
var aliases = map[string]string{
	// misspellings
	"metalic-olive":  "metallic-olive",
	"mettalic-olive": "metallic-olive",

	// variant spellings
	"gray":        "grey",
	"lite-yellow": "light-yellow",
	"lt-yellow":   "light-yellow",
	"lt-mint":     "light-mint",
	"lite-mint":   "light-mint",

	// compound to canonical
	"peach-pink": "peach",

	// common aliases
	"offwhite":   "cream",
	"off-white":  "cream",
	"ivory":      "cream",
	"champagne":  "cream",
	"tan":        "beige",
	"khaki":      "beige",
	"nude":       "beige",
	"scarlet":    "red",
	"crimson":    "maroon",
	"fuchsia":    "magenta",
	"violet":     "purple",
	"plum":       "purple",
	"grape":      "purple",
	"cyan":       "teal",
	"aqua":       "turquoise",
	"caramel":    "brown",
	"coffee":     "brown",
	"espresso":   "brown",
	"cocoa":      "chocolate",
	"forest":     "green",
	"emerald":    "green",
	"jade":       "green",
	"chartreuse": "green",
	"lemon":      "yellow",
	"sunshine":   "yellow",
	"amber":      "orange",
	"tangerine":  "orange",
	"salmon":     "coral",
	"dusty-rose": "rose",
	"mauve":      "rose",
	"indigo":     "navy",
	"cobalt":     "blue",
	"sapphire":   "blue",
	"cerulean":   "sky-blue",
	"pewter":     "grey",
	"charcoal":   "grey",
	"slate":      "grey",
	"ash":        "grey",

	// "Satin Tulip" folders are a pack, not a color
	"satin-tulip": "combo",
}

// Normalize maps a raw color label to its canonical token. Unknown values are
// returned in normalized form rather than rejected, so new colors keep
// filtering without a code change. Empty input yields "".
func Normalize(raw string) string {
	n := Token(raw)
	if n == "" {
		return ""
	}
	if canon, ok := aliases[n]; ok {
		return canon
	}
	if canonicalSet[n] {
		return n
	}
	return n
}

// IsCanonical reports whether token is part of the fixed facet vocabulary.
func IsCanonical(token string) bool {
	return canonicalSet[token]
}

// DisplayName turns a canonical token into a human label, e.g.
// "light-yellow" -> "Light Yellow".
func DisplayName(token string) string {
	if token == "" {
		return ""
	}
	parts := strings.Split(token, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// swatches maps canonical tokens to a CSS-renderable value. Multi-tone
// entries render as gradients.
var swatches = map[string]string{
	"black":          "#1a1a1a",
	"white":          "#ffffff",
	"cream":          "#f5f0e1",
	"beige":          "#d9c8a9",
	"grey":           "#9e9e9e",
	"brown":          "#795548",
	"red":            "#d32f2f",
	"wine":           "#722f37",
	"maroon":         "#800000",
	"burgundy":       "#800020",
	"pink":           "#f48fb1",
	"hot-pink":       "#ff1e7d",
	"baby-pink":      "#f8c8dc",
	"blush":          "#f2c1c1",
	"rose":           "#e8909c",
	"peach":          "#ffcba4",
	"coral":          "#ff7f6b",
	"orange":         "#f57c00",
	"yellow":         "#fdd835",
	"light-yellow":   "#fff59d",
	"mustard":        "#d4a017",
	"gold":           "#d4af37",
	"green":          "#388e3c",
	"olive":          "#808000",
	"metallic-olive": "#6b6b3a",
	"mint":           "#98dfc1",
	"light-mint":     "#c8f0dd",
	"sage":           "#9caf88",
	"teal":           "#00897b",
	"turquoise":      "#40e0d0",
	"blue":           "#1e88e5",
	"navy":           "#001f54",
	"sky-blue":       "#87ceeb",
	"petrol-blue":    "#005f6a",
	"royal-blue":     "#4169e1",
	"purple":         "#8e24aa",
	"lavender":       "#c5a3e0",
	"lilac":          "#c8a2c8",
	"magenta":        "#d8127d",
	"pistachio":      "#93c572",
	"chocolate":      "#3f2512",
	"silver":         "linear-gradient(135deg,#e8e8e8,#b8b8b8)",
	"multi":          "linear-gradient(135deg,#f48fb1,#fdd835,#40e0d0,#c5a3e0)",
	"combo":          "linear-gradient(135deg,#f48fb1,#fdd835,#40e0d0,#c5a3e0)",
}

const unknownSwatch = "linear-gradient(135deg,#dddddd,#aaaaaa)"

// Swatch returns a CSS color or gradient for a color token, with a neutral
// fallback for anything outside the swatch table.
func Swatch(token string) string {
	if s, ok := swatches[Normalize(token)]; ok {
		return s
	}
	return unknownSwatch
}

// Token lowercases, collapses spaces and underscores to hyphens, and strips
// anything that is not alphanumeric or a hyphen. It is the shared label
// cleaner; Normalize adds the color alias lookup on top.
func Token(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
