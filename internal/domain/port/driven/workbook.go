package driven

import (
	"io"

	"github.com/ericfisherdev/certlink/internal/domain/model"
)

// Sheet is a decoded worksheet: the header row in column order and the data rows.
type Sheet struct {
	Header []string
	Rows   []model.Row
}

// WorkbookCodec defines the driven port for decoding uploaded spreadsheets and
// encoding annotated results back into a downloadable workbook.
type WorkbookCodec interface {
	Decode(r io.Reader) (*Sheet, error)
	Encode(w io.Writer, sheet *Sheet) error
}
