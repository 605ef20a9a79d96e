package schema

import "notion-mirror/internal/notion"

// columnTypes is the fixed, total mapping from remote property kinds to
// Postgres column types. Kinds outside this table are dropped from the
// schema mapping with a warning.
var columnTypes = map[notion.PropertyKind]string{
	notion.KindTitle:          "TEXT",
	notion.KindRichText:       "TEXT",
	notion.KindNumber:         "DOUBLE PRECISION",
	notion.KindSelect:         "TEXT",
	notion.KindMultiSelect:    "TEXT[]",
	notion.KindStatus:         "TEXT",
	notion.KindDate:           "TIMESTAMPTZ",
	notion.KindPeople:         "TEXT[]",
	notion.KindFiles:          "TEXT[]",
	notion.KindCheckbox:       "BOOLEAN",
	notion.KindURL:            "TEXT",
	notion.KindEmail:          "TEXT",
	notion.KindPhoneNumber:    "TEXT",
	notion.KindFormula:        "TEXT",
	notion.KindRelation:       "TEXT[]",
	notion.KindRollup:         "TEXT",
	notion.KindCreatedTime:    "TIMESTAMPTZ",
	notion.KindCreatedBy:      "TEXT",
	notion.KindLastEditedTime: "TIMESTAMPTZ",
	notion.KindLastEditedBy:   "TEXT",
	notion.KindUniqueID:       "TEXT",
}

// ColumnTypeFor maps a remote property kind to its Postgres column type.
// The second return is false for unsupported kinds.
func ColumnTypeFor(kind notion.PropertyKind) (string, bool) {
	columnType, ok := columnTypes[kind]
	return columnType, ok
}
