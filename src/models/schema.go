package models

import "encoding/json"

// FieldType แบบของ field ที่ generator สร้างได้
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
	FieldURL      FieldType = "url"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldSelect   FieldType = "select"
	FieldRating   FieldType = "rating"
	// FieldDropdown is what the prompt engine emits when it revises a schema
	// that already passed through storage; treated like select.
	FieldDropdown FieldType = "dropdown"
)

// KnownFieldTypes is the closed set accepted by schema validation.
var KnownFieldTypes = map[FieldType]bool{
	FieldText: true, FieldTextarea: true, FieldEmail: true, FieldNumber: true,
	FieldTel: true, FieldDate: true, FieldTime: true, FieldURL: true,
	FieldCheckbox: true, FieldRadio: true, FieldSelect: true, FieldRating: true,
	FieldDropdown: true,
}

// --- Generation-time schema (producer-facing, from the prompt engine) ---

type GenerationSchema struct {
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Sections    []Section `bson:"sections,omitempty" json:"sections,omitempty"`
	// Fields is the legacy flat layout, equivalent to a single implicit section.
	// Ignored whenever Sections is non-empty.
	Fields []Field `bson:"fields,omitempty" json:"fields,omitempty"`
}

type Section struct {
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Fields      []Field     `bson:"fields" json:"fields"`
	Conditions  []Condition `bson:"conditions,omitempty" json:"conditions,omitempty"`
}

type Condition struct {
	FieldID   string `bson:"fieldId" json:"fieldId"`
	Equals    string `bson:"equals,omitempty" json:"equals,omitempty"`
	NotEquals string `bson:"notEquals,omitempty" json:"notEquals,omitempty"`
}

type Field struct {
	Label     string        `bson:"label" json:"label"`
	Type      FieldType     `bson:"type" json:"type"`
	Required  bool          `bson:"isRequired,omitempty" json:"required,omitempty"`
	Options   []FieldOption `bson:"options,omitempty" json:"options,omitempty"`
	Scale     int           `bson:"scale,omitempty" json:"scale,omitempty"`
	Min       *int          `bson:"min,omitempty" json:"min,omitempty"`
	Max       *int          `bson:"max,omitempty" json:"max,omitempty"`
	MinLength *int          `bson:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int          `bson:"maxLength,omitempty" json:"maxLength,omitempty"`
}

// AllFields flattens the canonical container: all sections' fields in order,
// or the legacy flat list when no section is present.
func (g *GenerationSchema) AllFields() []Field {
	if len(g.Sections) == 0 {
		return g.Fields
	}
	var fields []Field
	for _, sec := range g.Sections {
		fields = append(fields, sec.Fields...)
	}
	return fields
}

// FieldOption is one selectable choice. The prompt engine may emit it as a
// bare string or as an object carrying label/text keys, so it gets a custom
// JSON codec.
type FieldOption struct {
	Value string `bson:"value,omitempty" json:"value,omitempty"`
	Label string `bson:"label,omitempty" json:"label,omitempty"`
	Text  string `bson:"text,omitempty" json:"text,omitempty"`
}

func (o *FieldOption) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = FieldOption{Value: s}
		return nil
	}
	type plain FieldOption
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = FieldOption(p)
	return nil
}

func (o FieldOption) MarshalJSON() ([]byte, error) {
	if o.Value != "" && o.Label == "" && o.Text == "" {
		return json.Marshal(o.Value)
	}
	type plain FieldOption
	return json.Marshal(plain(o))
}

// Display picks the label-bearing value: string form wins, then label, then text.
func (o FieldOption) Display() string {
	if o.Value != "" {
		return o.Value
	}
	if o.Label != "" {
		return o.Label
	}
	return o.Text
}

// --- Storage schema (persisted, system of record) ---
// Intentionally reduced: only two question types survive persistence.

type QuestionType string

const (
	QuestionShortAnswer QuestionType = "short_answer"
	QuestionDropdown    QuestionType = "dropdown"
)

type StorageSchema struct {
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Questions   []Question `bson:"questions" json:"questions"`
}

type Question struct {
	// ID is opaque and assigned at conversion time, never derived from the label.
	ID      string       `bson:"id" json:"id"`
	Type    QuestionType `bson:"type" json:"type"`
	Label   string       `bson:"label" json:"label"`
	Options []Option     `bson:"options,omitempty" json:"options,omitempty"`
}

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}
