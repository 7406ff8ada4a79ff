package catalog

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

const thumbWidth = 400

// GenerateThumbnails writes a resized jpeg next to each product's primary
// image, named <base>_thumb.jpg. publicDir is the filesystem directory the
// site serves URL paths from, so an image at /assets/products/X lives at
// publicDir/assets/products/X. Existing thumbnails are left alone, so the
// step is cheap to re-run after a partial scan. Returns the number written.
func GenerateThumbnails(products []models.Product, publicDir string, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}
	written := 0
	for _, p := range products {
		if len(p.Images) == 0 {
			continue
		}
		src, ok := strings.CutPrefix(p.Images[0], "/")
		if !ok {
			continue
		}
		srcPath := filepath.Join(publicDir, filepath.FromSlash(src))
		thumbPath := thumbName(srcPath)
		if _, err := os.Stat(thumbPath); err == nil {
			continue
		}

		if err := writeThumb(srcPath, thumbPath); err != nil {
			// One bad image must not sink the whole batch.
			log.Warn("thumbnail failed", "image", srcPath, "error", err)
			continue
		}
		written++
	}
	return written, nil
}

func thumbName(srcPath string) string {
	ext := filepath.Ext(srcPath)
	return strings.TrimSuffix(srcPath, ext) + "_thumb.jpg"
}

func writeThumb(srcPath, thumbPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	thumb := resize.Resize(thumbWidth, 0, img, resize.Lanczos3)

	out, err := os.Create(thumbPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
