package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/certlink/internal/domain/model"
)

// ErrRecordNotFound indicates no stored record matches the requested fingerprint.
var ErrRecordNotFound = errors.New("record not found")

// RecordStore defines the driven port for fingerprint-keyed record persistence.
// InsertIfAbsent is atomic: it reports false without error when a record with
// the same fingerprint is already stored. Records are never updated or deleted.
// GetByFingerprint returns (nil, nil) when no record matches.
type RecordStore interface {
	InsertIfAbsent(ctx context.Context, record model.Record) (bool, error)
	GetByFingerprint(ctx context.Context, fingerprint string) (*model.Record, error)
	Exists(ctx context.Context, fingerprint string) (bool, error)
	Count(ctx context.Context) (int, error)
}
