package loader

import (
	"context"

	"github.com/informagico/fantavibe/internal/catalog"
)

// Loader owns the catalog lifecycle: it acquires the dataset, decodes it and
// rebuilds the in-memory catalog. Readers always see a complete catalog;
// rebuilds swap it atomically.
type Loader interface {
	// Load acquires the dataset and rebuilds the catalog. With force set,
	// change detection is bypassed and a download is attempted.
	Load(ctx context.Context, force bool) error
	// Catalog returns the current catalog. Never nil; before the first
	// successful Load it is empty.
	Catalog() *catalog.Catalog
	// Status reports how the last load went and how the dataset was sourced.
	Status() Status
}
