package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/certlink/internal/domain/model"
	"github.com/ericfisherdev/certlink/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RecordStore = (*RecordRepo)(nil)

// RecordRepo is the SQLite implementation of the RecordStore port interface.
type RecordRepo struct {
	db  *DB
	now func() time.Time
}

// NewRecordRepo creates a new RecordRepo backed by the given DB.
func NewRecordRepo(db *DB) *RecordRepo {
	return &RecordRepo{db: db, now: time.Now}
}

// InsertIfAbsent stores the record unless one with the same hashValue exists.
// Backed by the unique index on hashValue, so concurrent callers cannot both insert.
func (r *RecordRepo) InsertIfAbsent(ctx context.Context, rec model.Record) (bool, error) {
	const query = `
		INSERT OR IGNORE INTO data (
			Sno, Rollno, Name, Domain, Title, Mentor, Duration, Completion, hashValue, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.Writer.ExecContext(ctx, query,
		rec.Sno, rec.Rollno, rec.Name, rec.Domain, rec.Title, rec.Mentor,
		rec.Duration, rec.Completion, rec.HashValue,
		r.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert record %s: %w", rec.HashValue, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for record %s: %w", rec.HashValue, err)
	}
	return n > 0, nil
}

// GetByFingerprint retrieves a single record by hashValue.
// Returns nil, nil if the record does not exist.
func (r *RecordRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*model.Record, error) {
	const query = `
		SELECT rowid, Sno, Rollno, Name, Domain, Title, Mentor, Duration, Completion, hashValue, created_at
		FROM data
		WHERE hashValue = ?
	`

	rec, err := scanRecord(r.db.Reader.QueryRowContext(ctx, query, fingerprint))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", fingerprint, err)
	}
	return rec, nil
}

// Exists reports whether a record with the given hashValue is stored.
func (r *RecordRepo) Exists(ctx context.Context, fingerprint string) (bool, error) {
	const query = `SELECT COUNT(*) FROM data WHERE hashValue = ?`
	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query, fingerprint).Scan(&count); err != nil {
		return false, fmt.Errorf("check record %s: %w", fingerprint, err)
	}
	return count > 0, nil
}

// Count returns the number of stored records.
func (r *RecordRepo) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM data`
	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// scanRecord reads a record row. Legacy rows may hold NULL in any column.
func scanRecord(row *sql.Row) (*model.Record, error) {
	var (
		rec                                     model.Record
		sno, rollno, name, domain, title        sql.NullString
		mentor, duration, completion, createdAt sql.NullString
	)

	err := row.Scan(
		&rec.ID, &sno, &rollno, &name, &domain, &title,
		&mentor, &duration, &completion, &rec.HashValue, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Sno = sno.String
	rec.Rollno = rollno.String
	rec.Name = name.String
	rec.Domain = domain.String
	rec.Title = title.String
	rec.Mentor = mentor.String
	rec.Duration = duration.String
	rec.Completion = completion.String

	if createdAt.Valid {
		rec.CreatedAt, err = parseTime(createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
	}

	return &rec, nil
}

// parseTime parses a timestamp string from SQLite in the formats it commonly stores.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
