// Package filter narrows the catalog to a user's current view: category,
// free-text search, type/color sets, price range, and sort. Facet counts are
// deliberately computed against the category+search base only, so selecting
// one color never hides the counts of the others.
package filter

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

// Sort keys. Default keeps catalog order.
const (
	SortDefault   = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// State is the transient filter selection for one view. It is rebuilt from
// URL query parameters on every navigation and never persisted.
type State struct {
	Search   string
	Category string
	Types    []string
	Colors   []string
	PriceMin int
	PriceMax int // 0 means unbounded
	Sort     string
}

// FromQuery reconstructs filter state from request query parameters.
func FromQuery(q url.Values) State {
	s := State{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: q.Get("category"),
		Types:    splitMulti(q["type"]),
		Colors:   splitMulti(q["color"]),
		Sort:     q.Get("sort"),
	}
	if v, err := strconv.Atoi(q.Get("min")); err == nil && v > 0 {
		s.PriceMin = v
	}
	if v, err := strconv.Atoi(q.Get("max")); err == nil && v > 0 {
		s.PriceMax = v
	}
	switch s.Sort {
	case SortPriceAsc, SortPriceDesc:
	default:
		s.Sort = SortDefault
	}
	return s
}

func splitMulti(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Facet is one selectable value with its product count.
type Facet struct {
	Name  string
	Count int
}

// Facets describes what is still selectable within the current
// category+search base.
type Facets struct {
	Types    []Facet
	Colors   []Facet
	PriceMin int
	PriceMax int
}

// Result is a filtered, sorted, facet-annotated catalog view.
type Result struct {
	Products []models.Product
	Total    int
	Facets   Facets
}

// Engine filters one product list. Searchable text is precomputed at
// construction so repeated Apply calls stay cheap.
type Engine struct {
	products   []models.Product
	searchable []string
}

// NewEngine builds an engine over the repository's product list.
func NewEngine(products []models.Product) *Engine {
	e := &Engine{
		products:   products,
		searchable: make([]string, len(products)),
	}
	for i, p := range products {
		var parts []string
		parts = append(parts, p.Name, p.Category, p.Type, p.Color, p.NormalizedColor)
		for _, v := range p.Variants {
			parts = append(parts, v.Color, v.NormalizedColor)
		}
		e.searchable[i] = strings.ToLower(strings.Join(parts, " "))
	}
	return e
}

// Apply runs the full filter pipeline for one state.
func (e *Engine) Apply(s State) Result {
	base := e.baseMatches(s)

	typeSet := toSet(s.Types)
	colorSet := toSet(s.Colors)

	var out []models.Product
	for _, i := range base {
		p := e.products[i]

		if len(typeSet) > 0 && !typeSet[p.Type] {
			continue
		}
		if len(colorSet) > 0 {
			matched := false
			for _, c := range productColors(p) {
				if colorSet[c] {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			p = substituteVariantImages(p, colorSet)
		}
		if p.OfferPrice < s.PriceMin {
			continue
		}
		if s.PriceMax > 0 && p.OfferPrice > s.PriceMax {
			continue
		}
		out = append(out, p)
	}

	switch s.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OfferPrice < out[j].OfferPrice })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OfferPrice > out[j].OfferPrice })
	}

	return Result{
		Products: out,
		Total:    len(out),
		Facets:   e.facets(base),
	}
}

// baseMatches returns indices filtered by category and search only. This is
// the base both the product filter and the facet counts start from.
func (e *Engine) baseMatches(s State) []int {
	term := strings.ToLower(strings.TrimSpace(s.Search))
	var out []int
	for i, p := range e.products {
		if s.Category != "" && !strings.EqualFold(p.Category, s.Category) {
			continue
		}
		if term != "" && !strings.Contains(e.searchable[i], term) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// facets counts types and colors over the base set, ignoring the active
// type/color/price selections.
func (e *Engine) facets(base []int) Facets {
	types := map[string]int{}
	colorCounts := map[string]int{}
	minPrice, maxPrice := 0, 0
	first := true

	for _, i := range base {
		p := e.products[i]
		if p.Type != "" {
			types[p.Type]++
		}
		seen := map[string]bool{}
		for _, c := range productColors(p) {
			if !seen[c] {
				seen[c] = true
				colorCounts[c]++
			}
		}
		if first || p.OfferPrice < minPrice {
			minPrice = p.OfferPrice
		}
		if first || p.OfferPrice > maxPrice {
			maxPrice = p.OfferPrice
		}
		first = false
	}

	return Facets{
		Types:    sortedFacets(types),
		Colors:   sortedFacets(colorCounts),
		PriceMin: minPrice,
		PriceMax: maxPrice,
	}
}

// productColors is the product's own normalized color plus all variant
// colors, deduplicated via AvailableColors when the repository filled it.
func productColors(p models.Product) []string {
	if len(p.AvailableColors) > 0 {
		return p.AvailableColors
	}
	var out []string
	if p.NormalizedColor != "" {
		out = append(out, p.NormalizedColor)
	}
	for _, v := range p.Variants {
		if v.NormalizedColor != "" {
			out = append(out, v.NormalizedColor)
		}
	}
	return out
}

// substituteVariantImages swaps in a matching variant's images when the
// color selection matches a sibling rather than the product itself, so the
// card shows the color the shopper picked.
func substituteVariantImages(p models.Product, colorSet map[string]bool) models.Product {
	if colorSet[p.NormalizedColor] {
		return p
	}
	for _, v := range p.Variants {
		if colorSet[v.NormalizedColor] && len(v.Images) > 0 {
			p.Images = v.Images
			p.PrimaryImage = v.Images[0]
			return p
		}
	}
	return p
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

func sortedFacets(counts map[string]int) []Facet {
	out := make([]Facet, 0, len(counts))
	for name, count := range counts {
		out = append(out, Facet{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
