package schema

import (
	"sort"

	"notion-mirror/internal/notion"
	"notion-mirror/pkg/utils"
)

// Reserved columns present on every mirrored table. Once created they are
// never dropped or retyped.
const (
	ColumnRecordID = "recordid"
	ColumnContent  = "content"
	ColumnSyncedAt = "syncedat"
)

// PropertyMapping ties one remote property to its relational column.
type PropertyMapping struct {
	Kind       notion.PropertyKind `json:"kind"`
	ColumnType string              `json:"column_type"`
	ColumnName string              `json:"column_name"`
}

// Mapping is the derived relational schema, keyed by remote property name.
// Column names are unique across entries; unsupported property kinds never
// produce an entry.
type Mapping map[string]PropertyMapping

// PropertyNames returns the mapped remote property names in sorted order.
func (m Mapping) PropertyNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColumnNames returns the mapped column names ordered by their remote
// property name, the order used for DDL and upsert statements.
func (m Mapping) ColumnNames() []string {
	columns := make([]string, 0, len(m))
	for _, name := range m.PropertyNames() {
		columns = append(columns, m[name].ColumnName)
	}
	return columns
}

// ReconcileResult reports what reconciliation changed.
type ReconcileResult struct {
	Created      bool     `json:"created"`
	ColumnsAdded []string `json:"columns_added"`
}

// TableNameFor derives the deterministic table name of a database.
func TableNameFor(databaseID string) string {
	return "page_" + utils.SanitizeIdentifier(databaseID)
}
