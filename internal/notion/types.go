package notion

import "time"

// PropertyKind is the declared type tag of one database property definition.
type PropertyKind string

const (
	KindTitle          PropertyKind = "title"
	KindRichText       PropertyKind = "rich_text"
	KindNumber         PropertyKind = "number"
	KindSelect         PropertyKind = "select"
	KindMultiSelect    PropertyKind = "multi_select"
	KindStatus         PropertyKind = "status"
	KindDate           PropertyKind = "date"
	KindPeople         PropertyKind = "people"
	KindFiles          PropertyKind = "files"
	KindCheckbox       PropertyKind = "checkbox"
	KindURL            PropertyKind = "url"
	KindEmail          PropertyKind = "email"
	KindPhoneNumber    PropertyKind = "phone_number"
	KindFormula        PropertyKind = "formula"
	KindRelation       PropertyKind = "relation"
	KindRollup         PropertyKind = "rollup"
	KindCreatedTime    PropertyKind = "created_time"
	KindCreatedBy      PropertyKind = "created_by"
	KindLastEditedTime PropertyKind = "last_edited_time"
	KindLastEditedBy   PropertyKind = "last_edited_by"
	KindUniqueID       PropertyKind = "unique_id"
)

// Database is the schema-bearing container returned by the metadata endpoint.
type Database struct {
	ID         string                        `json:"id"`
	Properties map[string]PropertyDefinition `json:"properties"`
}

type PropertyDefinition struct {
	ID   string       `json:"id"`
	Type PropertyKind `json:"type"`
}

// Page is one record of a database, with typed property values.
type Page struct {
	ID             string                   `json:"id"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Properties     map[string]PropertyValue `json:"properties"`
}

// PropertyValue carries exactly one populated payload, selected by Type.
type PropertyValue struct {
	Type PropertyKind `json:"type"`

	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	Status         *SelectOption  `json:"status,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	People         []User         `json:"people,omitempty"`
	Files          []FileValue    `json:"files,omitempty"`
	Checkbox       *bool          `json:"checkbox,omitempty"`
	URL            *string        `json:"url,omitempty"`
	Email          *string        `json:"email,omitempty"`
	PhoneNumber    *string        `json:"phone_number,omitempty"`
	Formula        *FormulaValue  `json:"formula,omitempty"`
	Relation       []Reference    `json:"relation,omitempty"`
	Rollup         *RollupValue   `json:"rollup,omitempty"`
	CreatedTime    *string        `json:"created_time,omitempty"`
	CreatedBy      *User          `json:"created_by,omitempty"`
	LastEditedTime *string        `json:"last_edited_time,omitempty"`
	LastEditedBy   *User          `json:"last_edited_by,omitempty"`
	UniqueID       *UniqueID      `json:"unique_id,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type FileValue struct {
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	File     *HostedFile  `json:"file,omitempty"`
	External *ExternalURL `json:"external,omitempty"`
}

type HostedFile struct {
	URL string `json:"url"`
}

type ExternalURL struct {
	URL string `json:"url"`
}

type FormulaValue struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

type RollupValue struct {
	Type   string          `json:"type"`
	String *string         `json:"string,omitempty"`
	Number *float64        `json:"number,omitempty"`
	Date   *DateValue      `json:"date,omitempty"`
	Array  []PropertyValue `json:"array,omitempty"`
}

type Reference struct {
	ID string `json:"id"`
}

type UniqueID struct {
	Prefix *string `json:"prefix,omitempty"`
	Number float64 `json:"number"`
}

// QueryRequest shapes one page of a database query. Cursor and EditedAfter
// are mutually exclusive: a cursor continues the current page sequence, a
// watermark starts a fresh incremental cycle.
type QueryRequest struct {
	DatabaseID  string
	PageSize    int
	Cursor      string
	EditedAfter *time.Time
}

// QueryResult is one page of query results.
type QueryResult struct {
	Pages      []Page
	HasMore    bool
	NextCursor string
}

// Block is one content block of a page body.
type Block struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	HasChildren bool          `json:"has_children"`
	Paragraph   *BlockContent `json:"paragraph,omitempty"`
	Heading1    *BlockContent `json:"heading_1,omitempty"`
	Heading2    *BlockContent `json:"heading_2,omitempty"`
	Heading3    *BlockContent `json:"heading_3,omitempty"`
	Bulleted    *BlockContent `json:"bulleted_list_item,omitempty"`
	Numbered    *BlockContent `json:"numbered_list_item,omitempty"`
	ToDo        *ToDoContent  `json:"to_do,omitempty"`
	Toggle      *BlockContent `json:"toggle,omitempty"`
	Quote       *BlockContent `json:"quote,omitempty"`
	Callout     *BlockContent `json:"callout,omitempty"`
	Code        *CodeContent  `json:"code,omitempty"`
}

type BlockContent struct {
	RichText []RichText `json:"rich_text"`
}

type ToDoContent struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

type CodeContent struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// BlockList is one page of a block-children listing.
type BlockList struct {
	Blocks     []Block
	HasMore    bool
	NextCursor string
}

// PlainText concatenates the plain-text fragments of a rich text run in
// order, with no separator.
func PlainText(parts []RichText) string {
	var out string
	for _, p := range parts {
		out += p.PlainText
	}
	return out
}
