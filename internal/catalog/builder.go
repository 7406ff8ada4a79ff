// Package catalog turns a directory tree of product photos into the
// products.json the storefront serves. Folder positions carry the metadata:
// category/type/color from root to leaf. The scan is deterministic, so an
// unchanged tree always yields byte-identical output.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danishansari-dev/scrunchcreate/internal/colors"
	"github.com/danishansari-dev/scrunchcreate/internal/models"
	"github.com/danishansari-dev/scrunchcreate/internal/pricing"
)

// DefaultPublicPrefix is the URL root image paths are written under.
const DefaultPublicPrefix = "/assets/products"

// DefaultSkipDirs are folder names excluded from the scan (case-insensitive).
var DefaultSkipDirs = []string{"product measurements"}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true, ".svg": true,
}

// Builder scans a product image tree and emits enriched product records.
type Builder struct {
	Root         string
	PublicPrefix string
	SkipDirs     []string
	Resolver     *pricing.Resolver
	Log          *slog.Logger
}

// NewBuilder returns a builder with the default prefix, skip list, and rule
// table.
func NewBuilder(root string) *Builder {
	return &Builder{
		Root:         root,
		PublicPrefix: DefaultPublicPrefix,
		SkipDirs:     DefaultSkipDirs,
		Resolver:     pricing.Default(),
		Log:          slog.Default(),
	}
}

// productFolder is one directory holding product images.
type productFolder struct {
	relPath string
	images  []string // file names, natural-numeric order
}

// Build walks the tree and returns the catalog sorted by (category, name).
// A missing root yields an empty catalog, not an error: the build must stay
// non-fatal for a content pipeline. Unreadable subdirectories are skipped
// with a warning.
func (b *Builder) Build() ([]models.Product, error) {
	log := b.Log
	if log == nil {
		log = slog.Default()
	}

	if _, err := os.Stat(b.Root); err != nil {
		log.Warn("products root missing, emitting empty catalog", "root", b.Root)
		return []models.Product{}, nil
	}

	skip := make(map[string]bool, len(b.SkipDirs))
	for _, s := range b.SkipDirs {
		skip[strings.ToLower(s)] = true
	}

	var folders []productFolder
	b.scan(b.Root, "", skip, &folders, log)

	bySlug := make(map[string]models.Product, len(folders))
	order := make([]string, 0, len(folders))

	for _, f := range folders {
		p, ok := b.fromFolder(f, log)
		if !ok {
			continue
		}
		slug := p.Slug
		if _, taken := bySlug[slug]; taken {
			// Deterministic disambiguation instead of last-write-wins:
			// later leaves get a numeric suffix.
			n := 2
			for {
				candidate := fmt.Sprintf("%s-%d", slug, n)
				if _, taken := bySlug[candidate]; !taken {
					log.Warn("slug collision, appending suffix",
						"slug", slug, "resolved", candidate, "path", f.relPath)
					slug = candidate
					break
				}
				n++
			}
			p.Slug = slug
			p.ID = slug
			p.Name = TitleFromSlug(slug)
		}
		bySlug[slug] = p
		order = append(order, slug)
	}

	products := make([]models.Product, 0, len(order))
	for _, slug := range order {
		products = append(products, bySlug[slug])
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Category != products[j].Category {
			return products[i].Category < products[j].Category
		}
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// scan descends depth-first. A directory holding images emits a product
// folder even when it also holds subdirectories; the nested color folders
// are emitted separately.
func (b *Builder) scan(dir, rel string, skip map[string]bool, out *[]productFolder, log *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	var images []string
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		if e.IsDir() {
			if skip[strings.ToLower(e.Name())] {
				continue
			}
			b.scan(filepath.Join(dir, e.Name()), childRel, skip, out, log)
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, e.Name())
		}
	}

	if len(images) > 0 && rel != "" {
		sort.Slice(images, func(i, j int) bool { return naturalLess(images[i], images[j]) })
		*out = append(*out, productFolder{relPath: rel, images: images})
	}
}

// fromFolder interprets the folder path positionally and enriches the
// record with pricing and color data.
func (b *Builder) fromFolder(f productFolder, log *slog.Logger) (models.Product, bool) {
	parts := strings.Split(f.relPath, "/")
	if len(parts) == 0 || parts[0] == "" {
		log.Warn("could not parse product path", "path", f.relPath)
		return models.Product{}, false
	}

	var category, typ, color string
	switch {
	case len(parts) >= 3:
		category, typ, color = parts[0], parts[1], parts[len(parts)-1]
	case len(parts) == 2:
		category, typ = parts[0], parts[1]
	default:
		category = parts[0]
	}

	var slug string
	switch {
	case typ != "" && color != "":
		slug = Slugify(typ) + "-" + Slugify(category) + "-" + Slugify(color)
	case typ != "":
		slug = Slugify(typ) + "-" + Slugify(category)
	default:
		slug = Slugify(category)
	}

	prefix := b.PublicPrefix
	if prefix == "" {
		prefix = DefaultPublicPrefix
	}
	urls := make([]string, len(f.images))
	for i, name := range f.images {
		urls[i] = path.Join(prefix, f.relPath, name)
	}

	resolver := b.Resolver
	if resolver == nil {
		resolver = pricing.Default()
	}
	packSize := ParsePackSize(color)
	if packSize == 0 {
		packSize = ParsePackSize(typ)
	}
	quote := resolver.Resolve(pricing.Query{
		Category: category,
		Type:     typ,
		Color:    color,
		PackSize: packSize,
	})

	return models.Product{
		ID:              slug,
		Slug:            slug,
		Name:            TitleFromSlug(slug),
		Category:        category,
		Type:            typ,
		Color:           color,
		NormalizedColor: colors.Normalize(color),
		ColorSwatch:     colors.Swatch(color),
		Images:          urls,
		OfferPrice:      quote.OfferPrice,
		OriginalPrice:   quote.OriginalPrice,
		DiscountPercent: quote.DiscountPercent,
	}, true
}

// WriteJSON writes the catalog to path, creating parent directories. Output
// is pretty-printed with a stable field order so rescans of an unchanged
// tree produce byte-identical files.
func WriteJSON(products []models.Product, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// LoadJSON reads a previously generated catalog. A missing file degrades to
// an empty catalog, matching the builder's missing-root behavior.
func LoadJSON(inPath string) ([]models.Product, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Product{}, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return products, nil
}
