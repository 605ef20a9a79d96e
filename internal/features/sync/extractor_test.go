package sync

import (
	"reflect"
	"testing"

	"notion-mirror/internal/features/schema"
	"notion-mirror/internal/notion"

	"go.uber.org/zap"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestExtractValuesTextConcatenation(t *testing.T) {
	mapping := schema.Mapping{
		"Title": {Kind: notion.KindTitle, ColumnType: "TEXT", ColumnName: "title"},
		"Notes": {Kind: notion.KindRichText, ColumnType: "TEXT", ColumnName: "notes"},
	}
	page := notion.Page{ID: "p1", Properties: map[string]notion.PropertyValue{
		"Title": {Type: notion.KindTitle, Title: []notion.RichText{
			{PlainText: "Hello"}, {PlainText: " "}, {PlainText: "world"},
		}},
		"Notes": {Type: notion.KindRichText, RichText: []notion.RichText{
			{PlainText: "a"}, {PlainText: "b"},
		}},
	}}

	values := ExtractValues(page, mapping, zap.NewNop())
	if values["title"] != "Hello world" {
		t.Errorf("title = %v, want Hello world", values["title"])
	}
	if values["notes"] != "ab" {
		t.Errorf("notes = %v, want ab", values["notes"])
	}
}

func TestExtractValuesPerKindRules(t *testing.T) {
	mapping := schema.Mapping{
		"Status":   {Kind: notion.KindSelect, ColumnType: "TEXT", ColumnName: "status"},
		"Tags":     {Kind: notion.KindMultiSelect, ColumnType: "TEXT[]", ColumnName: "tags"},
		"Due":      {Kind: notion.KindDate, ColumnType: "TIMESTAMPTZ", ColumnName: "due"},
		"Done":     {Kind: notion.KindCheckbox, ColumnType: "BOOLEAN", ColumnName: "done"},
		"Site":     {Kind: notion.KindURL, ColumnType: "TEXT", ColumnName: "site"},
		"Parents":  {Kind: notion.KindRelation, ColumnType: "TEXT[]", ColumnName: "parents"},
		"Docs":     {Kind: notion.KindFiles, ColumnType: "TEXT[]", ColumnName: "docs"},
		"Serial":   {Kind: notion.KindUniqueID, ColumnType: "TEXT", ColumnName: "serial"},
		"Score":    {Kind: notion.KindNumber, ColumnType: "DOUBLE PRECISION", ColumnName: "score"},
	}

	page := notion.Page{ID: "p1", Properties: map[string]notion.PropertyValue{
		"Status":  {Type: notion.KindSelect, Select: &notion.SelectOption{Name: "Done"}},
		"Tags":    {Type: notion.KindMultiSelect, MultiSelect: []notion.SelectOption{{Name: "a"}, {Name: "b"}}},
		"Due":     {Type: notion.KindDate, Date: &notion.DateValue{Start: "2024-05-01T10:00:00Z"}},
		"Done":    {Type: notion.KindCheckbox},
		"Site":    {Type: notion.KindURL, URL: strPtr("https://example.com")},
		"Parents": {Type: notion.KindRelation, Relation: []notion.Reference{{ID: "r1"}, {ID: "r2"}}},
		"Docs": {Type: notion.KindFiles, Files: []notion.FileValue{
			{Name: "brief.pdf", Type: "file", File: &notion.HostedFile{URL: "https://host/brief.pdf"}},
			{Name: "broken", Type: "file"},
			{Name: "ext", Type: "external", External: &notion.ExternalURL{URL: "https://ext/x"}},
		}},
		"Serial": {Type: notion.KindUniqueID, UniqueID: &notion.UniqueID{Prefix: strPtr("TASK"), Number: 42}},
		"Score":  {Type: notion.KindNumber, Number: numPtr(9.5)},
	}}

	values := ExtractValues(page, mapping, zap.NewNop())

	if values["status"] != "Done" {
		t.Errorf("status = %v", values["status"])
	}
	if got := values["tags"].([]string); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("tags = %v", got)
	}
	if values["due"] != "2024-05-01T10:00:00Z" {
		t.Errorf("due = %v", values["due"])
	}
	if values["done"] != false {
		t.Errorf("structurally present but unset checkbox should default to false, got %v", values["done"])
	}
	if values["site"] != "https://example.com" {
		t.Errorf("site = %v", values["site"])
	}
	if got := values["parents"].([]string); !reflect.DeepEqual(got, []string{"r1", "r2"}) {
		t.Errorf("parents = %v", got)
	}
	if got := values["docs"].([]string); !reflect.DeepEqual(got, []string{"https://host/brief.pdf", "https://ext/x"}) {
		t.Errorf("entries lacking a url must be filtered out, got %v", got)
	}
	if values["serial"] != "TASK-42" {
		t.Errorf("serial = %v", values["serial"])
	}
	if values["score"] != 9.5 {
		t.Errorf("score = %v", values["score"])
	}
}

func TestExtractValuesUnsetAndAbsent(t *testing.T) {
	mapping := schema.Mapping{
		"Status": {Kind: notion.KindSelect, ColumnType: "TEXT", ColumnName: "status"},
		"Tags":   {Kind: notion.KindMultiSelect, ColumnType: "TEXT[]", ColumnName: "tags"},
		"Due":    {Kind: notion.KindDate, ColumnType: "TIMESTAMPTZ", ColumnName: "due"},
		"Gone":   {Kind: notion.KindRichText, ColumnType: "TEXT", ColumnName: "gone"},
	}
	page := notion.Page{ID: "p1", Properties: map[string]notion.PropertyValue{
		"Status": {Type: notion.KindSelect},      // unset single choice: absent
		"Tags":   {Type: notion.KindMultiSelect}, // unset multi choice: empty list, never absent
		"Due":    {Type: notion.KindDate},        // unset timestamp: absent
		// "Gone" not present on this record at all
	}}

	values := ExtractValues(page, mapping, zap.NewNop())

	if _, ok := values["status"]; ok {
		t.Error("unset select must be absent")
	}
	if got, ok := values["tags"]; !ok {
		t.Error("unset multi_select must still yield an empty list")
	} else if list := got.([]string); len(list) != 0 {
		t.Errorf("unset multi_select = %v, want empty", list)
	}
	if _, ok := values["due"]; ok {
		t.Error("unset date must be absent")
	}
	if _, ok := values["gone"]; ok {
		t.Error("property absent from the record must be omitted")
	}
}

func TestExtractValuesFormulaPreferenceOrder(t *testing.T) {
	mapping := schema.Mapping{
		"F": {Kind: notion.KindFormula, ColumnType: "TEXT", ColumnName: "f"},
	}

	tests := []struct {
		name    string
		formula notion.FormulaValue
		want    interface{}
	}{
		{"String preferred", notion.FormulaValue{String: strPtr("s"), Number: numPtr(1)}, "s"},
		{"Number next", notion.FormulaValue{Number: numPtr(2.5), Boolean: boolPtr(true)}, 2.5},
		{"Boolean next", notion.FormulaValue{Boolean: boolPtr(true), Date: &notion.DateValue{Start: "2024-01-01"}}, true},
		{"Date last", notion.FormulaValue{Date: &notion.DateValue{Start: "2024-01-01"}}, "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := notion.Page{ID: "p1", Properties: map[string]notion.PropertyValue{
				"F": {Type: notion.KindFormula, Formula: &tt.formula},
			}}
			values := ExtractValues(page, mapping, zap.NewNop())
			if values["f"] != tt.want {
				t.Errorf("formula = %v, want %v", values["f"], tt.want)
			}
		})
	}
}

func TestExtractValuesRollupArraySerializes(t *testing.T) {
	mapping := schema.Mapping{
		"R": {Kind: notion.KindRollup, ColumnType: "TEXT", ColumnName: "r"},
	}
	page := notion.Page{ID: "p1", Properties: map[string]notion.PropertyValue{
		"R": {Type: notion.KindRollup, Rollup: &notion.RollupValue{
			Type: "array",
			Array: []notion.PropertyValue{
				{Type: notion.KindRichText, RichText: []notion.RichText{{PlainText: "x"}}},
				{Type: notion.KindNumber, Number: numPtr(3)},
			},
		}},
	}}

	values := ExtractValues(page, mapping, zap.NewNop())
	if values["r"] != "x, 3" {
		t.Errorf("rollup array = %v, want \"x, 3\"", values["r"])
	}
}

func TestExtractValuesUnrecognizedKindSkipped(t *testing.T) {
	// The mapping was derived before the remote property changed kind.
	mapping := schema.Mapping{
		"Status": {Kind: notion.KindSelect, ColumnType: "TEXT", ColumnName: "status"},
	}
	page := notion.Page{ID: "p1", Properties: map[string]notion.PropertyValue{
		"Status": {Type: "verification"},
	}}

	values := ExtractValues(page, mapping, zap.NewNop())
	if len(values) != 0 {
		t.Errorf("unrecognized kind must yield no value, got %v", values)
	}
}
