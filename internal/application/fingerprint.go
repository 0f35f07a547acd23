package application

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ericfisherdev/certlink/internal/domain/model"
)

const (
	invalidDate   = "Invalid Date"
	missingField  = "undefined"
	notANumber    = "NaN"
	utcZoneName   = "Coordinated Universal Time"
	nativeLayout  = "Mon Jan 02 2006 15:04:05 GMT-0700"
	displayLayout = "Jan 2"
)

// Layouts interpreted as UTC instants before conversion to the configured location.
var utcLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Layouts interpreted as wall-clock time in the configured location.
var localLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"01-02-06",
	"01-02-2006",
	"1/2/06 15:04",
	"1/2/2006 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-06",
	"2-Jan-2006",
}

// CompletionDate is a parsed "Date of Completion" cell. The zero value is an
// invalid date.
type CompletionDate struct {
	t     time.Time
	valid bool
}

// Valid reports whether the source cell held a recognizable date.
func (d CompletionDate) Valid() bool { return d.valid }

// Time returns the parsed instant. It is the zero time for invalid dates.
func (d CompletionDate) Time() time.Time { return d.t }

// String returns the native long form that feeds the fingerprint, e.g.
// "Thu Jan 05 2023 00:00:00 GMT+0000 (Coordinated Universal Time)".
func (d CompletionDate) String() string {
	if !d.valid {
		return invalidDate
	}
	zone, _ := d.t.Zone()
	if d.t.Location() == time.UTC || zone == "UTC" {
		zone = utcZoneName
	}
	return d.t.Format(nativeLayout) + " (" + zone + ")"
}

// Short returns the display form stored and written back to the sheet, e.g. "Jan 5".
func (d CompletionDate) Short() string {
	if !d.valid {
		return invalidDate
	}
	return d.t.Format(displayLayout)
}

// Fingerprinter derives stable row identifiers.
type Fingerprinter struct {
	loc *time.Location
}

// NewFingerprinter creates a Fingerprinter that interprets dates in loc.
// A nil loc means UTC.
func NewFingerprinter(loc *time.Location) *Fingerprinter {
	if loc == nil {
		loc = time.UTC
	}
	return &Fingerprinter{loc: loc}
}

// ParseCompletion parses a completion date cell. Absent or unrecognized
// values yield an invalid CompletionDate rather than an error.
func (f *Fingerprinter) ParseCompletion(raw string, present bool) CompletionDate {
	if !present {
		return CompletionDate{}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CompletionDate{}
	}

	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return CompletionDate{t: t.In(f.loc), valid: true}
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, f.loc); err == nil {
			return CompletionDate{t: t, valid: true}
		}
	}

	// Unformatted cells surface as Excel serial day numbers.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			y, m, d := t.Date()
			hh, mm, ss := t.Clock()
			return CompletionDate{t: time.Date(y, m, d, hh, mm, ss, 0, f.loc), valid: true}
		}
	}

	return CompletionDate{}
}

// Fingerprint computes the SHA-256 hex digest of the row's fields concatenated
// in fixed order, ending with the native form of the parsed completion date.
// Absent fields contribute "undefined" following loose concatenation rules.
func (f *Fingerprinter) Fingerprint(row model.Row, completion CompletionDate) string {
	var c looseConcat
	for _, column := range model.RequiredColumns[:len(model.RequiredColumns)-1] {
		v, ok := row.Get(column)
		c.add(v, ok)
	}
	c.add(completion.String(), true)

	sum := sha256.Sum256([]byte(c.String()))
	return hex.EncodeToString(sum[:])
}

// Annotate normalizes the row's completion date to its display form and
// returns the row fingerprint. The row is modified in place.
func (f *Fingerprinter) Annotate(row *model.Row) string {
	raw, ok := row.Get(model.ColumnCompletion)
	completion := f.ParseCompletion(raw, ok)
	fp := f.Fingerprint(*row, completion)
	row.Set(model.ColumnCompletion, completion.Short())
	return fp
}

// looseConcat joins values where an absent operand is "undefined" and two
// adjacent non-string operands collapse to "NaN", so legacy fingerprints of
// rows with missing leading fields stay reproducible.
type looseConcat struct {
	b       strings.Builder
	started bool
	isText  bool
	pending string
}

func (c *looseConcat) add(v string, present bool) {
	switch {
	case !c.started:
		c.started = true
		if present {
			c.isText = true
			c.b.WriteString(v)
		} else {
			c.pending = missingField
		}
	case c.isText:
		if present {
			c.b.WriteString(v)
		} else {
			c.b.WriteString(missingField)
		}
	case present:
		c.isText = true
		c.b.WriteString(c.pending)
		c.b.WriteString(v)
	default:
		c.pending = notANumber
	}
}

func (c *looseConcat) String() string {
	if !c.isText {
		return c.pending
	}
	return c.b.String()
}
