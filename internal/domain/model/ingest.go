package model

// IngestOutcome classifies what happened to a single row during ingestion.
type IngestOutcome string

const (
	IngestInserted IngestOutcome = "inserted"
	IngestExisting IngestOutcome = "existing"
	IngestFailed   IngestOutcome = "failed"
)

// RowResult is the per-row status of an ingestion run.
type RowResult struct {
	Index       int
	Fingerprint string
	Outcome     IngestOutcome
	Err         error
}

// IngestReport summarizes an ingestion run. Rows holds the annotated input
// rows in their original order, each carrying its fingerprint link.
type IngestReport struct {
	Rows     []Row
	Results  []RowResult
	Inserted int
	Existing int
	Failed   int
}
