package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"notion-mirror/internal/config"
	"notion-mirror/internal/notion"
	"notion-mirror/pkg/utils"

	"go.uber.org/zap"
)

// ErrSchemaSyncFailed marks a DDL or introspection statement failure.
// Reconciliation is not transactional across statements; entries reconciled
// before the failure stay committed.
var ErrSchemaSyncFailed = errors.New("schema sync failed")

// MetadataClient is the remote metadata capability.
type MetadataClient interface {
	RetrieveDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
}

// Relational is the DDL/introspection capability of the target store.
type Relational interface {
	Exec(ctx context.Context, query string, args ...interface{}) error
	TableExists(ctx context.Context, table string) (bool, error)
	ListColumns(ctx context.Context, table string) ([]string, error)
}

type SchemaService interface {
	TableName() string
	FetchMapping(ctx context.Context) (Mapping, error)
	Reconcile(ctx context.Context, mapping Mapping) (*ReconcileResult, error)
	ReconcileSummary(ctx context.Context) (string, error)
}

type SchemaServiceImpl struct {
	databaseID string
	table      string
	remote     MetadataClient
	db         Relational
	logger     *zap.Logger
}

func NewSchemaService(cfg *config.Config, remote MetadataClient, db Relational, logger *zap.Logger) SchemaService {
	return &SchemaServiceImpl{
		databaseID: cfg.NotionDatabaseID,
		table:      TableNameFor(cfg.NotionDatabaseID),
		remote:     remote,
		db:         db,
		logger:     logger,
	}
}

func (s *SchemaServiceImpl) TableName() string {
	return s.table
}

// FetchMapping derives the relational schema mapping from the database's
// current property definitions. Properties with unsupported kinds, empty
// sanitized names, or sanitized names already claimed by an earlier property
// (in sorted name order) are skipped with a warning, never an error.
func (s *SchemaServiceImpl) FetchMapping(ctx context.Context) (Mapping, error) {
	db, err := s.remote.RetrieveDatabase(ctx, s.databaseID)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	if db.Properties == nil {
		return nil, fmt.Errorf("%w: database %s has no properties section", notion.ErrShapeInvalid, s.databaseID)
	}

	names := make([]string, 0, len(db.Properties))
	for name := range db.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	mapping := make(Mapping, len(names))
	claimed := make(map[string]string, len(names))

	for _, name := range names {
		kind := db.Properties[name].Type
		columnType, ok := ColumnTypeFor(kind)
		if !ok {
			s.logger.Warn("dropping property with unsupported kind",
				zap.String("property", name), zap.String("kind", string(kind)))
			continue
		}

		column := utils.SanitizeIdentifier(name)
		if column == "" {
			s.logger.Warn("dropping property with empty sanitized name", zap.String("property", name))
			continue
		}
		if prev, taken := claimed[column]; taken {
			s.logger.Warn("dropping property whose sanitized name collides",
				zap.String("property", name), zap.String("column", column), zap.String("claimed_by", prev))
			continue
		}

		claimed[column] = name
		mapping[name] = PropertyMapping{Kind: kind, ColumnType: columnType, ColumnName: column}
	}

	return mapping, nil
}

// Reconcile converges the target table onto the mapping: creates the table
// when absent, otherwise adds whatever columns are missing. Columns are
// never dropped or retyped.
func (s *SchemaServiceImpl) Reconcile(ctx context.Context, mapping Mapping) (*ReconcileResult, error) {
	exists, err := s.db.TableExists(ctx, s.table)
	if err != nil {
		return nil, fmt.Errorf("%w: check table %s: %v", ErrSchemaSyncFailed, s.table, err)
	}

	if !exists {
		if err := s.createTable(ctx, mapping); err != nil {
			return nil, err
		}
		return &ReconcileResult{Created: true}, nil
	}

	return s.alterTable(ctx, mapping)
}

func (s *SchemaServiceImpl) createTable(ctx context.Context, mapping Mapping) error {
	defs := []string{
		ColumnRecordID + " TEXT PRIMARY KEY",
		ColumnContent + " TEXT",
		ColumnSyncedAt + " TIMESTAMPTZ",
	}
	for _, name := range mapping.PropertyNames() {
		entry := mapping[name]
		defs = append(defs, fmt.Sprintf("%s %s", entry.ColumnName, entry.ColumnType))
	}

	query := fmt.Sprintf("CREATE TABLE %s (%s)", s.table, strings.Join(defs, ", "))
	if err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: create table %s: %v", ErrSchemaSyncFailed, s.table, err)
	}

	s.logger.Info("created table", zap.String("table", s.table), zap.Int("columns", len(defs)))
	return nil
}

func (s *SchemaServiceImpl) alterTable(ctx context.Context, mapping Mapping) (*ReconcileResult, error) {
	columns, err := s.db.ListColumns(ctx, s.table)
	if err != nil {
		return nil, fmt.Errorf("%w: list columns of %s: %v", ErrSchemaSyncFailed, s.table, err)
	}

	existing := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		existing[column] = struct{}{}
	}

	result := &ReconcileResult{}
	for _, name := range mapping.PropertyNames() {
		entry := mapping[name]
		if _, ok := existing[entry.ColumnName]; ok {
			continue
		}
		if err := s.addColumn(ctx, entry.ColumnName, entry.ColumnType); err != nil {
			return nil, err
		}
		result.ColumnsAdded = append(result.ColumnsAdded, entry.ColumnName)
	}

	// Backfill reserved columns on pre-existing tables. The primary key
	// cannot be retrofitted with its constraint, so a missing recordid is
	// flagged for manual intervention instead.
	if _, ok := existing[ColumnRecordID]; !ok {
		s.logger.Warn("table is missing its primary key column; cannot add it with a primary key constraint, manual intervention required",
			zap.String("table", s.table), zap.String("column", ColumnRecordID))
	}
	if _, ok := existing[ColumnContent]; !ok {
		if err := s.addColumn(ctx, ColumnContent, "TEXT"); err != nil {
			return nil, err
		}
		result.ColumnsAdded = append(result.ColumnsAdded, ColumnContent)
	}
	if _, ok := existing[ColumnSyncedAt]; !ok {
		if err := s.addColumn(ctx, ColumnSyncedAt, "TIMESTAMPTZ"); err != nil {
			return nil, err
		}
		result.ColumnsAdded = append(result.ColumnsAdded, ColumnSyncedAt)
	}

	return result, nil
}

func (s *SchemaServiceImpl) addColumn(ctx context.Context, column, columnType string) error {
	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", s.table, column, columnType)
	if err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: add column %s to %s: %v", ErrSchemaSyncFailed, column, s.table, err)
	}
	s.logger.Info("added column", zap.String("table", s.table), zap.String("column", column))
	return nil
}

// ReconcileSummary runs a full fetch-and-reconcile and describes the outcome.
func (s *SchemaServiceImpl) ReconcileSummary(ctx context.Context) (string, error) {
	mapping, err := s.FetchMapping(ctx)
	if err != nil {
		return "", err
	}

	result, err := s.Reconcile(ctx, mapping)
	if err != nil {
		return "", err
	}

	switch {
	case result.Created:
		return fmt.Sprintf("table %s created with %d property columns", s.table, len(mapping)), nil
	case len(result.ColumnsAdded) > 0:
		return fmt.Sprintf("table %s: columns added: %s", s.table, strings.Join(result.ColumnsAdded, ", ")), nil
	default:
		return fmt.Sprintf("table %s is up to date", s.table), nil
	}
}
