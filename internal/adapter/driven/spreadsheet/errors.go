package spreadsheet

import "errors"

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoSheets indicates the workbook contains no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrNoHeader indicates the first worksheet has no header row.
var ErrNoHeader = errors.New("worksheet has no header row")
