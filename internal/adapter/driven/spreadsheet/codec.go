// Package spreadsheet implements the WorkbookCodec port on top of excelize.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ericfisherdev/certlink/internal/domain/model"
	"github.com/ericfisherdev/certlink/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.WorkbookCodec = (*Codec)(nil)

// DefaultSheetName is the name of the single worksheet in encoded workbooks.
const DefaultSheetName = "Sheet1"

// Codec reads the first worksheet of an uploaded workbook and writes annotated
// rows back to a single-sheet workbook.
type Codec struct{}

// NewCodec creates a Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode reads the first worksheet. The first row is the header; each later
// row with at least one non-empty cell becomes a model.Row keyed by header.
// Empty cells are left out of the row so they read as absent.
func (c *Codec) Decode(r io.Reader) (*driven.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := headerNames(rows[0])
	if len(header) == 0 {
		return nil, ErrNoHeader
	}

	sheet := &driven.Sheet{Header: header}
	for rowIdx, cells := range rows[1:] {
		row := model.Row{Index: rowIdx + 2}
		for colIdx, value := range cells {
			if colIdx >= len(rows[0]) || value == "" {
				continue
			}
			name := header[colIdx]
			if name == "" {
				continue
			}
			row.Set(name, value)
		}
		if len(row.Values) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}

	return sheet, nil
}

// headerNames trims header cells and disambiguates repeated names with a
// numeric suffix ("Name", "Name_1"). Blank header cells stay blank and their
// columns are skipped.
func headerNames(cells []string) []string {
	seen := make(map[string]int, len(cells))
	names := make([]string, len(cells))
	nonBlank := 0
	for i, cell := range cells {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
		nonBlank++
	}
	if nonBlank == 0 {
		return nil
	}
	return names
}

// Encode writes the sheet's header, with a trailing link column when the
// header lacks one, followed by every row. Link cells also carry a hyperlink.
func (c *Codec) Encode(w io.Writer, sheet *driven.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	columns := outputColumns(sheet.Header)

	for colIdx, name := range columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", colIdx+1, err)
		}
		if err := f.SetCellStr(DefaultSheetName, cell, name); err != nil {
			return fmt.Errorf("write header %q: %w", name, err)
		}
	}

	for rowIdx, row := range sheet.Rows {
		for colIdx, name := range columns {
			value, ok := row.Get(name)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", colIdx+1, rowIdx+2, err)
			}
			if err := f.SetCellStr(DefaultSheetName, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
			if name == model.ColumnLink && value != "" {
				if err := f.SetCellHyperLink(DefaultSheetName, cell, value, "External"); err != nil {
					return fmt.Errorf("write hyperlink %s: %w", cell, err)
				}
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func outputColumns(header []string) []string {
	columns := make([]string, 0, len(header)+1)
	hasLink := false
	for _, name := range header {
		if name == "" {
			continue
		}
		if name == model.ColumnLink {
			hasLink = true
		}
		columns = append(columns, name)
	}
	if !hasLink {
		columns = append(columns, model.ColumnLink)
	}
	return columns
}
