package model

import "time"

// Spreadsheet column names expected on every uploaded sheet.
const (
	ColumnSerial     = "S.No"
	ColumnRollNumber = "Roll Number"
	ColumnName       = "Name"
	ColumnDomain     = "Domain"
	ColumnTitle      = "Project Title"
	ColumnMentor     = "Mentor"
	ColumnDuration   = "Duration (months)"
	ColumnCompletion = "Date of Completion"

	// ColumnLink is appended to the result spreadsheet.
	ColumnLink = "link"
)

// RequiredColumns lists the source columns in fingerprint order.
var RequiredColumns = []string{
	ColumnSerial,
	ColumnRollNumber,
	ColumnName,
	ColumnDomain,
	ColumnTitle,
	ColumnMentor,
	ColumnDuration,
	ColumnCompletion,
}

// Row is a single uploaded spreadsheet row keyed by column header.
// A column missing from the map is absent, which is distinct from an empty cell.
type Row struct {
	Index  int
	Values map[string]string
}

// Get returns the cell value for column and whether it was present.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Set stores value under column, allocating the map if needed.
func (r *Row) Set(column, value string) {
	if r.Values == nil {
		r.Values = make(map[string]string)
	}
	r.Values[column] = value
}

// Record is the persisted form of a Row, keyed by its fingerprint.
type Record struct {
	ID         int64
	Sno        string
	Rollno     string
	Name       string
	Domain     string
	Title      string
	Mentor     string
	Duration   string
	Completion string
	HashValue  string
	CreatedAt  time.Time
}

// Fields returns the record values keyed by stored column name. These keys
// are the names accepted inside <%= %> template placeholders.
func (r Record) Fields() map[string]string {
	return map[string]string{
		"Sno":        r.Sno,
		"Rollno":     r.Rollno,
		"Name":       r.Name,
		"Domain":     r.Domain,
		"Title":      r.Title,
		"Mentor":     r.Mentor,
		"Duration":   r.Duration,
		"Completion": r.Completion,
		"hashValue":  r.HashValue,
	}
}

// RecordFromRow builds the stored form of an annotated row.
func RecordFromRow(row Row, fingerprint string) Record {
	return Record{
		Sno:        row.Values[ColumnSerial],
		Rollno:     row.Values[ColumnRollNumber],
		Name:       row.Values[ColumnName],
		Domain:     row.Values[ColumnDomain],
		Title:      row.Values[ColumnTitle],
		Mentor:     row.Values[ColumnMentor],
		Duration:   row.Values[ColumnDuration],
		Completion: row.Values[ColumnCompletion],
		HashValue:  fingerprint,
	}
}
