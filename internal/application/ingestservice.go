package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/certlink/internal/domain/model"
	"github.com/ericfisherdev/certlink/internal/domain/port/driven"
)

// IngestService fingerprints uploaded rows and stores each previously unseen
// fingerprint exactly once.
type IngestService struct {
	store         driven.RecordStore
	fingerprinter *Fingerprinter
	baseURL       string
	logger        *slog.Logger
}

// NewIngestService creates an IngestService. baseURL is the lookup link
// prefix; the fingerprint is appended to it verbatim.
func NewIngestService(store driven.RecordStore, fingerprinter *Fingerprinter, baseURL string, logger *slog.Logger) *IngestService {
	return &IngestService{
		store:         store,
		fingerprinter: fingerprinter,
		baseURL:       baseURL,
		logger:        logger,
	}
}

// LinkFor returns the lookup link for a fingerprint.
func (s *IngestService) LinkFor(fingerprint string) string {
	return s.baseURL + fingerprint
}

// Ingest annotates every row with its normalized completion date and lookup
// link, then persists rows whose fingerprint is not yet stored. A storage
// failure on one row is logged and recorded in the report; the remaining rows
// are still processed. Ingest itself only fails when ctx is cancelled.
func (s *IngestService) Ingest(ctx context.Context, rows []model.Row) (*model.IngestReport, error) {
	report := &model.IngestReport{
		Rows:    make([]model.Row, 0, len(rows)),
		Results: make([]model.RowResult, 0, len(rows)),
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fp := s.fingerprinter.Annotate(&row)
		row.Set(model.ColumnLink, s.LinkFor(fp))
		report.Rows = append(report.Rows, row)

		result := model.RowResult{Index: row.Index, Fingerprint: fp}
		inserted, err := s.store.InsertIfAbsent(ctx, model.RecordFromRow(row, fp))
		switch {
		case err != nil:
			s.logger.Error("failed to store row", "row", row.Index, "fingerprint", fp, "error", err)
			result.Outcome = model.IngestFailed
			result.Err = err
			report.Failed++
		case inserted:
			result.Outcome = model.IngestInserted
			report.Inserted++
		default:
			result.Outcome = model.IngestExisting
			report.Existing++
		}
		report.Results = append(report.Results, result)
	}

	s.logger.Info("ingestion complete",
		"rows", len(rows),
		"inserted", report.Inserted,
		"existing", report.Existing,
		"failed", report.Failed,
	)

	return report, nil
}
