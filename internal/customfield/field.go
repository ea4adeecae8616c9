// Package customfield manages the user-defined fields attached to a single
// employee record: their definitions, their typed values and the JSON blob
// they are persisted in.
package customfield

import (
	"strings"
)

// FieldType is the declared type of a custom field
type FieldType string

const (
	TypeText        FieldType = "text"
	TypeNumber      FieldType = "number"
	TypeDate        FieldType = "date"
	TypeSelect      FieldType = "select"
	TypeMultiSelect FieldType = "multiselect"
	TypeBoolean     FieldType = "boolean"
)

// Valid reports whether t is one of the known field types
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeSelect, TypeMultiSelect, TypeBoolean:
		return true
	}
	return false
}

// HasOptions reports whether the type draws its values from Options
func (t FieldType) HasOptions() bool {
	return t == TypeSelect || t == TypeMultiSelect
}

func (t FieldType) shape() shape {
	switch t {
	case TypeBoolean:
		return shapeBool
	case TypeMultiSelect:
		return shapeList
	default:
		return shapeText
	}
}

// Field is one custom field definition together with its current value.
// This is also the element of the persisted JSON list.
type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options"`
	Value    Value     `json:"value"`
}

// IsEmpty reports whether the field has no value yet. A boolean always has one.
func (f Field) IsEmpty() bool {
	switch f.Value.shape {
	case shapeBool, shapeRaw:
		return false
	case shapeList:
		return len(f.Value.items) == 0
	case shapeText:
		return strings.TrimSpace(f.Value.text) == ""
	}
	return true
}

// Definition is the user input for a new field
type Definition struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options"`
}

// Update carries the attributes to change on an existing field; nil members are left alone
type Update struct {
	Name     *string    `json:"name"`
	Label    *string    `json:"label"`
	Type     *FieldType `json:"type"`
	Required *bool      `json:"required"`
	Options  []string   `json:"options"`
}

// Fields is the ordered custom field list of one record
type Fields []Field

// Index returns the position of the field with id, or -1
func (fs Fields) Index(id string) int {
	for i := range fs {
		if fs[i].ID == id {
			return i
		}
	}
	return -1
}

// ByName returns the field whose machine name is name
func (fs Fields) ByName(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// nameTaken reports whether another field than exceptID already uses name
func (fs Fields) nameTaken(name, exceptID string) bool {
	for _, f := range fs {
		if f.Name == name && f.ID != exceptID {
			return true
		}
	}
	return false
}

// MissingRequired lists the names of required fields that have no value
func (fs Fields) MissingRequired() []string {
	var missing []string
	for _, f := range fs {
		if f.Required && f.IsEmpty() {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Clone returns a deep copy so callers can mutate without touching fs
func (fs Fields) Clone() Fields {
	if fs == nil {
		return nil
	}
	out := make(Fields, len(fs))
	for i, f := range fs {
		f.Options = cloneStrings(f.Options)
		f.Value = f.Value.clone()
		out[i] = f
	}
	return out
}

// NormalizeName lowercases s and joins its whitespace-separated words with underscores
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// normalizeOptions trims every option and drops blanks
func normalizeOptions(opts []string) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
