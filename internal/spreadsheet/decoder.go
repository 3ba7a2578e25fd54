package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/xuri/excelize/v2"
)

// XLSXDecoder reads the first sheet of an xlsx workbook, using the first row
// as column headers.
type XLSXDecoder struct{}

// NewXLSXDecoder creates a new decoder.
func NewXLSXDecoder() Decoder {
	return &XLSXDecoder{}
}

var _ Decoder = (*XLSXDecoder)(nil)

func (d *XLSXDecoder) Decode(data []byte) ([]catalog.Row, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []catalog.Row{}, nil
	}

	headers := rows[0]
	decoded := make([]catalog.Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(catalog.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			}
		}
		decoded = append(decoded, row)
	}

	log.Info("Decoded spreadsheet", "sheet", sheets[0], "rows", len(decoded), "columns", len(headers))
	return decoded, nil
}
