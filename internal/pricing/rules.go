package pricing

// Rules is the ordered price table. First match wins, so specific rules sit
// above type-level rules, which sit above category defaults. Match fields are
// structural only (category, type, color, pack size); product names are
// display text and never consulted.
//
// Price figures are in whole rupees.
//
// Reference price list (2026-02):
//
//	Regular scrunchie 40, combo of 2/3/6/12: 65/99/199/399
//	Tulip scrunchie 69, combo of 3/6/12/24: 199/399/799/1599
//	Printed scrunchie 40, combo of 5: 197
//	Printed mini bow 59
//	Gift hamper 199, satin hamper 699
var Rules = []Rule{
	// gift hampers: satin hamper is the premium tier
	{Match{Category: "gifthamper", Type: "satin-hamper"}, 699, "Satin hamper gift hamper"},
	{Match{Category: "gifthamper", Type: "glimmer-grace"}, 189, "Glimmer & Grace hamper"},
	{Match{Category: "gifthamper"}, 199, "Gift hamper"},

	// scrunchie packs, most specific first
	{Match{Category: "scrunchie", Type: "combo", Color: "tulip-sheer"}, 599, "Premium tulip sheer combo"},
	{Match{Category: "scrunchie", Type: "combo", Color: "tulip"}, 199, "Tulip scrunchie combo of 3"},
	{Match{Category: "scrunchie", Type: "tulip", PackSize: 3}, 199, "Tulip combo of 3"},
	{Match{Category: "scrunchie", Type: "tulip", PackSize: 6}, 399, "Tulip combo of 6"},
	{Match{Category: "scrunchie", Type: "tulip", PackSize: 12}, 799, "Tulip combo of 12"},
	{Match{Category: "scrunchie", Type: "tulip", PackSize: 24}, 1599, "Tulip combo of 24"},
	{Match{Category: "scrunchie", Type: "classic", PackSize: 2}, 65, "Combo of 2 scrunchies"},
	{Match{Category: "scrunchie", Type: "classic", PackSize: 3}, 99, "Combo of 3 scrunchies"},
	{Match{Category: "scrunchie", Type: "classic", PackSize: 6}, 199, "Combo of 6 scrunchies"},
	{Match{Category: "scrunchie", Type: "classic", PackSize: 12}, 399, "Combo of 12 scrunchies"},
	{Match{Category: "scrunchie", Type: "satin-printed", PackSize: 5}, 197, "Combo of 5 printed scrunchies"},
	{Match{Category: "scrunchie", Type: "satin-mini", PackSize: 14}, 399, "Satin mini scrunchies pack of 14"},

	// scrunchie types
	{Match{Category: "scrunchie", Type: "combo"}, 99, "Combo of 3 satin scrunchies"},
	{Match{Category: "scrunchie", Type: "tulip"}, 69, "Tulip scrunchie"},
	{Match{Category: "scrunchie", Type: "tulip-sheer"}, 79, "Tulip sheer scrunchie"},
	{Match{Category: "scrunchie", Type: "satin-printed"}, 40, "Printed scrunchie single"},
	{Match{Category: "scrunchie", Type: "satin-mini"}, 30, "Satin mini scrunchie"},
	{Match{Category: "scrunchie"}, 40, "Single satin scrunchie"},

	// hair bows
	{Match{Category: "hairbow", Type: "satin", Color: "mini"}, 359, "Satin mini bow pack of 6"},
	{Match{Category: "hairbow", Type: "printed-mini"}, 59, "Printed mini bow single"},
	{Match{Category: "hairbow", Type: "satin-mini"}, 49, "Satin mini bow"},
	{Match{Category: "hairbow", Type: "jimmychoo"}, 99, "Jimmy Choo hair bow clip with pearls"},
	{Match{Category: "hairbow", Type: "scarf"}, 99, "Scarf hair bow"},
	{Match{Category: "hairbow", Type: "satin-tulip"}, 89, "Satin tulip bow"},
	{Match{Category: "hairbow", Type: "satin"}, 79, "Satin three-layered hair bow clip"},
	{Match{Category: "hairbow", Type: "sheer-satin"}, 79, "Sheer satin hair bow"},
	{Match{Category: "hairbow", Type: "velvet"}, 79, "Velvet hair bow"},
	{Match{Category: "hairbow", Type: "satin-princess"}, 79, "Satin princess bow"},
	{Match{Category: "hairbow", Type: "classic"}, 79, "Classic hair bow"},
	{Match{Category: "hairbow", Type: "combo"}, 399, "Hair bow combo"},
	{Match{Category: "hairbow"}, 79, "Hair bow"},

	// category defaults
	{Match{Category: "flowerjewellery", Type: "rose"}, 399, "Rose flower jewellery"},
	{Match{Category: "flowerjewellery", Type: "combo"}, 399, "Flower jewellery combo"},
	{Match{Category: "flowerjewellery"}, 399, "Flower jewellery"},
	{Match{Category: "earring"}, 99, "Earring"},
	{Match{Category: "paraandi"}, 399, "Paraandi"},
	{Match{Category: "hairclip"}, 99, "Hairclip"},
}

// markups is how much higher MRP is than the offer price, per category.
var markups = map[string]float64{
	"scrunchie":       0.20,
	"hairbow":         0.20,
	"gifthamper":      0.15,
	"flowerjewellery": 0.15,
	"earring":         0.25,
	"paraandi":        0.15,
}

const defaultMarkup = 0.20

// FallbackPrice applies when no rule matches. Deliberately non-zero so an
// unrecognized category is never offered for free.
const FallbackPrice = 99
