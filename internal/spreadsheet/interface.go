package spreadsheet

import "github.com/informagico/fantavibe/internal/catalog"

// Decoder turns a raw spreadsheet payload into flat rows for the catalog
// builder. The catalog owns no parsing; this is the only place the file
// format is known.
type Decoder interface {
	Decode(data []byte) ([]catalog.Row, error)
}
