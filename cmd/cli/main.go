// Command cli runs the content pipeline: scanning the product image tree
// into products.json, generating thumbnails, and listing recorded orders.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/danishansari-dev/scrunchcreate/internal/catalog"
	"github.com/danishansari-dev/scrunchcreate/internal/checkout"
	"github.com/danishansari-dev/scrunchcreate/internal/config"
	"github.com/danishansari-dev/scrunchcreate/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		if err := runGenerate(cfg); err != nil {
			slog.Error("Catalog generation failed", "error", err)
			os.Exit(1)
		}
	case "thumbnails":
		if err := runThumbnails(cfg); err != nil {
			slog.Error("Thumbnail generation failed", "error", err)
			os.Exit(1)
		}
	case "orders":
		if err := runOrders(cfg); err != nil {
			slog.Error("Order listing failed", "error", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cli <generate|thumbnails|orders>")
	fmt.Fprintln(os.Stderr, "  generate    scan PRODUCTS_DIR and write CATALOG_PATH")
	fmt.Fprintln(os.Stderr, "  thumbnails  write resized thumbnails next to primary images")
	fmt.Fprintln(os.Stderr, "  orders      list recorded orders, newest first")
}

func runGenerate(cfg *config.Config) error {
	products, err := catalog.NewBuilder(cfg.ProductsDir).Build()
	if err != nil {
		return err
	}
	if err := catalog.WriteJSON(products, cfg.CatalogPath); err != nil {
		return err
	}
	slog.Info("Catalog written", "path", cfg.CatalogPath, "products", len(products))
	return nil
}

func runThumbnails(cfg *config.Config) error {
	products, err := catalog.LoadJSON(cfg.CatalogPath)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog %s is empty; run generate first", cfg.CatalogPath)
	}
	written, err := catalog.GenerateThumbnails(products, cfg.PublicDir, nil)
	if err != nil {
		return err
	}
	slog.Info("Thumbnails generated", "written", written)
	return nil
}

func runOrders(cfg *config.Config) error {
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	// Same migrations the server applies, so a fresh DB still lists cleanly.
	if err := db.Migrate("migrations"); err != nil {
		return err
	}

	total, err := db.CountOrders()
	if err != nil {
		return err
	}
	orders, err := db.GetOrders(50, 0)
	if err != nil {
		return err
	}

	fmt.Printf("%d orders recorded\n", total)
	for _, o := range orders {
		fmt.Printf("%s  %-10s  ₹%-8s  %s  %s\n",
			o.CreatedAt, o.Status, checkout.FormatINR(o.Total), o.OrderRef, o.CustomerName)
	}
	return nil
}
