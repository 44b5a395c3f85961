package images

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

// Rendition directory names under each product's image root.
const (
	renditionOriginal  = "original"
	renditionMedium    = "medium"
	renditionThumbnail = "thumbnail"
)

// Layout holds the resolved rendition directories for one product.
type Layout struct {
	Root         string
	OriginalDir  string
	MediumDir    string
	ThumbnailDir string
}

// ResolveLayout ensures the per-product rendition directories exist under
// root and returns their paths. Safe to call repeatedly; MkdirAll is a no-op
// for directories already present.
func ResolveLayout(root string, productID uuid.UUID) (Layout, error) {
	productRoot := filepath.Join(root, "products", productID.String())
	layout := Layout{
		Root:         productRoot,
		OriginalDir:  filepath.Join(productRoot, renditionOriginal),
		MediumDir:    filepath.Join(productRoot, renditionMedium),
		ThumbnailDir: filepath.Join(productRoot, renditionThumbnail),
	}

	for _, dir := range []string{layout.OriginalDir, layout.MediumDir, layout.ThumbnailDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Layout{}, pkgerrors.Wrap(pkgerrors.CodeIO, err, "creating image directories")
		}
	}

	return layout, nil
}
