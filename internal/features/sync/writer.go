package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notion-mirror/internal/features/schema"

	"github.com/lib/pq"
)

// ErrWriteFailed marks a failed upsert statement. The orchestrator treats
// it as a per-record failure, not fatal to the cycle.
var ErrWriteFailed = errors.New("record write failed")

// Execer is the parameterized statement capability of the target store.
type Execer interface {
	Exec(ctx context.Context, query string, args ...interface{}) error
}

// Writer persists one flattened record.
type Writer interface {
	Upsert(ctx context.Context, table string, rec *Record, knownColumns []string) error
}

type UpsertWriter struct {
	db Execer
}

func NewUpsertWriter(db Execer) Writer {
	return &UpsertWriter{db: db}
}

// Upsert builds and executes one insert-or-update statement keyed by the
// record id. Every non-key column is overwritten with the newly supplied
// value; known columns absent from the record are written as null. This is
// full-row replace semantics, not a merge.
func (w *UpsertWriter) Upsert(ctx context.Context, table string, rec *Record, knownColumns []string) error {
	columns := []string{schema.ColumnRecordID, schema.ColumnContent, schema.ColumnSyncedAt}
	values := []interface{}{rec.ID, rec.Content, rec.SyncedAt}

	for _, column := range knownColumns {
		columns = append(columns, column)
		value, ok := rec.Values[column]
		if !ok {
			values = append(values, nil)
			continue
		}
		if list, isList := value.([]string); isList {
			values = append(values, pq.Array(list))
			continue
		}
		values = append(values, value)
	}

	placeholders := make([]string, len(columns))
	updateExprs := make([]string, 0, len(columns)-1)
	for i, column := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if column != schema.ColumnRecordID {
			updateExprs = append(updateExprs, fmt.Sprintf("%s = $%d", column, i+1))
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		schema.ColumnRecordID,
		strings.Join(updateExprs, ", "),
	)

	if err := w.db.Exec(ctx, query, values...); err != nil {
		return fmt.Errorf("%w: upsert %s into %s: %v", ErrWriteFailed, rec.ID, table, err)
	}
	return nil
}
