package sync

import (
	"fmt"
	"strconv"
	"strings"

	"notion-mirror/internal/features/schema"
	"notion-mirror/internal/notion"

	"go.uber.org/zap"
)

// ExtractValues flattens one record into column values, applying the
// per-kind decode rules. Properties present in the mapping but absent on
// the record are omitted from the result; the writer fills them with null.
// Unrecognized kinds are warned about and skipped, never an error.
func ExtractValues(page notion.Page, mapping schema.Mapping, logger *zap.Logger) map[string]interface{} {
	values := make(map[string]interface{}, len(mapping))

	for _, name := range mapping.PropertyNames() {
		property, ok := page.Properties[name]
		if !ok {
			continue
		}

		if _, recognized := schema.ColumnTypeFor(property.Type); !recognized {
			logger.Warn("skipping value with unrecognized kind",
				zap.String("record", page.ID),
				zap.String("property", name),
				zap.String("kind", string(property.Type)))
			continue
		}

		if value, present := decodeValue(property); present {
			values[mapping[name].ColumnName] = value
		}
	}

	return values
}

// decodeValue resolves one typed property value to a plain scalar or array.
// The second return is false when the value is structurally unset.
func decodeValue(v notion.PropertyValue) (interface{}, bool) {
	switch v.Type {
	case notion.KindTitle:
		return notion.PlainText(v.Title), true
	case notion.KindRichText:
		return notion.PlainText(v.RichText), true
	case notion.KindNumber:
		if v.Number == nil {
			return nil, false
		}
		return *v.Number, true
	case notion.KindSelect:
		return optionName(v.Select)
	case notion.KindStatus:
		return optionName(v.Status)
	case notion.KindMultiSelect:
		names := make([]string, 0, len(v.MultiSelect))
		for _, option := range v.MultiSelect {
			names = append(names, option.Name)
		}
		return names, true
	case notion.KindDate:
		if v.Date == nil {
			return nil, false
		}
		return v.Date.Start, true
	case notion.KindCheckbox:
		if v.Checkbox == nil {
			return false, true
		}
		return *v.Checkbox, true
	case notion.KindURL:
		return optionalString(v.URL)
	case notion.KindEmail:
		return optionalString(v.Email)
	case notion.KindPhoneNumber:
		return optionalString(v.PhoneNumber)
	case notion.KindFormula:
		return decodeFormula(v.Formula)
	case notion.KindRollup:
		return decodeRollup(v.Rollup)
	case notion.KindRelation:
		ids := make([]string, 0, len(v.Relation))
		for _, ref := range v.Relation {
			ids = append(ids, ref.ID)
		}
		return ids, true
	case notion.KindPeople:
		names := make([]string, 0, len(v.People))
		for _, user := range v.People {
			names = append(names, userLabel(&user))
		}
		return names, true
	case notion.KindFiles:
		urls := make([]string, 0, len(v.Files))
		for _, file := range v.Files {
			if url := fileURL(file); url != "" {
				urls = append(urls, url)
			}
		}
		return urls, true
	case notion.KindCreatedTime:
		return optionalString(v.CreatedTime)
	case notion.KindLastEditedTime:
		return optionalString(v.LastEditedTime)
	case notion.KindCreatedBy:
		if v.CreatedBy == nil {
			return nil, false
		}
		return userLabel(v.CreatedBy), true
	case notion.KindLastEditedBy:
		if v.LastEditedBy == nil {
			return nil, false
		}
		return userLabel(v.LastEditedBy), true
	case notion.KindUniqueID:
		if v.UniqueID == nil {
			return nil, false
		}
		number := strconv.FormatInt(int64(v.UniqueID.Number), 10)
		if v.UniqueID.Prefix != nil {
			return *v.UniqueID.Prefix + "-" + number, true
		}
		return number, true
	default:
		return nil, false
	}
}

// decodeFormula resolves a computed value, preferring string, then number,
// boolean and date sub-results.
func decodeFormula(f *notion.FormulaValue) (interface{}, bool) {
	if f == nil {
		return nil, false
	}
	switch {
	case f.String != nil:
		return *f.String, true
	case f.Number != nil:
		return *f.Number, true
	case f.Boolean != nil:
		return *f.Boolean, true
	case f.Date != nil:
		return f.Date.Start, true
	default:
		return nil, false
	}
}

// decodeRollup resolves like a formula; array rollups serialize to one
// comma-joined string form.
func decodeRollup(r *notion.RollupValue) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	switch {
	case r.String != nil:
		return *r.String, true
	case r.Number != nil:
		return *r.Number, true
	case r.Date != nil:
		return r.Date.Start, true
	case r.Array != nil:
		parts := make([]string, 0, len(r.Array))
		for _, element := range r.Array {
			if value, present := decodeValue(element); present {
				parts = append(parts, fmt.Sprint(value))
			}
		}
		return strings.Join(parts, ", "), true
	default:
		return nil, false
	}
}

func optionName(option *notion.SelectOption) (interface{}, bool) {
	if option == nil {
		return nil, false
	}
	return option.Name, true
}

func optionalString(s *string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}

func userLabel(user *notion.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.ID
}

func fileURL(file notion.FileValue) string {
	if file.File != nil {
		return file.File.URL
	}
	if file.External != nil {
		return file.External.URL
	}
	return ""
}
