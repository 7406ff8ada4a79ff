// Package repository holds the built catalog in memory for the process
// lifetime. It is an explicit injectable object rather than a package-level
// cache, so tests construct fresh instances and the server builds exactly
// one at startup.
package repository

import (
	"sort"
	"strings"

	"github.com/danishansari-dev/scrunchcreate/internal/colors"
	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

// Repository is an immutable, in-process view of the product catalog.
// Derived fields (primary image, sibling variants, available colors) are
// computed once at construction.
type Repository struct {
	products []models.Product
	bySlug   map[string]int
}

// New builds a repository from catalog records. Products without images are
// dropped here as a second line of defense; the builder already excludes
// zero-image leaves.
func New(products []models.Product) *Repository {
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if len(p.Images) == 0 {
			continue
		}
		if p.NormalizedColor == "" && p.Color != "" {
			p.NormalizedColor = colors.Normalize(p.Color)
		}
		kept = append(kept, p)
	}

	r := &Repository{
		products: kept,
		bySlug:   make(map[string]int, len(kept)),
	}
	for i := range kept {
		r.bySlug[kept[i].Slug] = i
	}
	r.derive()
	return r
}

// derive fills PrimaryImage, Variants, and AvailableColors. Variants are
// siblings: same category and type, a different color.
func (r *Repository) derive() {
	type key struct{ category, typ string }
	groups := make(map[key][]int)
	for i, p := range r.products {
		groups[key{p.Category, p.Type}] = append(groups[key{p.Category, p.Type}], i)
	}

	for _, idxs := range groups {
		for _, i := range idxs {
			p := &r.products[i]
			p.PrimaryImage = p.Images[0]

			colorSet := map[string]bool{}
			if p.NormalizedColor != "" {
				colorSet[p.NormalizedColor] = true
			}
			for _, j := range idxs {
				if j == i {
					continue
				}
				sib := r.products[j]
				if sib.Color == "" || sib.Slug == p.Slug {
					continue
				}
				p.Variants = append(p.Variants, models.Variant{
					Slug:            sib.Slug,
					Color:           sib.Color,
					NormalizedColor: sib.NormalizedColor,
					Images:          sib.Images,
				})
				if sib.NormalizedColor != "" {
					colorSet[sib.NormalizedColor] = true
				}
			}

			p.AvailableColors = make([]string, 0, len(colorSet))
			for c := range colorSet {
				p.AvailableColors = append(p.AvailableColors, c)
			}
			sort.Strings(p.AvailableColors)
		}
	}
}

// GetAll returns every product in catalog order. Callers must not mutate
// the returned slice.
func (r *Repository) GetAll() []models.Product {
	return r.products
}

// GetBySlug returns the product for a slug, or nil when absent.
func (r *Repository) GetBySlug(slug string) *models.Product {
	i, ok := r.bySlug[slug]
	if !ok {
		return nil
	}
	return &r.products[i]
}

// GetByCategory returns products whose category matches case-insensitively.
func (r *Repository) GetByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in catalog order.
func (r *Repository) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Len returns the catalog size.
func (r *Repository) Len() int {
	return len(r.products)
}
