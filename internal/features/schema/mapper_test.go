package schema

import (
	"testing"

	"notion-mirror/internal/notion"
)

func TestColumnTypeForCoversAllKnownKinds(t *testing.T) {
	kinds := []notion.PropertyKind{
		notion.KindTitle, notion.KindRichText, notion.KindNumber, notion.KindSelect,
		notion.KindMultiSelect, notion.KindStatus, notion.KindDate, notion.KindPeople,
		notion.KindFiles, notion.KindCheckbox, notion.KindURL, notion.KindEmail,
		notion.KindPhoneNumber, notion.KindFormula, notion.KindRelation, notion.KindRollup,
		notion.KindCreatedTime, notion.KindCreatedBy, notion.KindLastEditedTime,
		notion.KindLastEditedBy, notion.KindUniqueID,
	}

	for _, kind := range kinds {
		columnType, ok := ColumnTypeFor(kind)
		if !ok || columnType == "" {
			t.Errorf("kind %s should map to a column type", kind)
		}
		// Deterministic: repeated lookups agree.
		again, _ := ColumnTypeFor(kind)
		if again != columnType {
			t.Errorf("kind %s mapped to %s then %s", kind, columnType, again)
		}
	}
}

func TestColumnTypeForUnknownKind(t *testing.T) {
	for _, kind := range []notion.PropertyKind{"verification", "button", ""} {
		if columnType, ok := ColumnTypeFor(kind); ok {
			t.Errorf("kind %q should be unsupported, got %s", kind, columnType)
		}
	}
}

func TestColumnTypeShapes(t *testing.T) {
	tests := []struct {
		kind notion.PropertyKind
		want string
	}{
		{notion.KindTitle, "TEXT"},
		{notion.KindNumber, "DOUBLE PRECISION"},
		{notion.KindMultiSelect, "TEXT[]"},
		{notion.KindDate, "TIMESTAMPTZ"},
		{notion.KindCheckbox, "BOOLEAN"},
		{notion.KindRelation, "TEXT[]"},
	}
	for _, tt := range tests {
		if got, _ := ColumnTypeFor(tt.kind); got != tt.want {
			t.Errorf("ColumnTypeFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
