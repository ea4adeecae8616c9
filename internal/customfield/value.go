package customfield

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type shape uint8

const (
	shapeNone shape = iota
	shapeText
	shapeBool
	shapeList
	shapeRaw
)

func (s shape) String() string {
	switch s {
	case shapeText:
		return "text"
	case shapeBool:
		return "boolean"
	case shapeList:
		return "list"
	case shapeRaw:
		return "json"
	}
	return "null"
}

// Value is the stored value of a custom field. Exactly one of its shapes is
// set: a string (text, number, date, select), a bool (boolean) or a string
// list (multiselect). The zero Value is null.
//
// JSON numbers keep their literal and are written back as numbers. Stored
// JSON that fits none of the shapes is kept verbatim as a raw value.
type Value struct {
	shape  shape
	text   string
	number bool
	flag   bool
	items  []string
	raw    json.RawMessage
}

// TextValue builds a scalar string value
func TextValue(s string) Value { return Value{shape: shapeText, text: s} }

// BoolValue builds a boolean value
func BoolValue(b bool) Value { return Value{shape: shapeBool, flag: b} }

// ListValue builds a multiselect value; a nil list becomes an empty one
func ListValue(items []string) Value {
	out := make([]string, len(items))
	copy(out, items)
	return Value{shape: shapeList, items: out}
}

// DefaultValue returns the initial value of a field of type t
func DefaultValue(t FieldType) Value {
	switch t.shape() {
	case shapeBool:
		return BoolValue(false)
	case shapeList:
		return ListValue(nil)
	default:
		return TextValue("")
	}
}

// IsNull reports whether v carries no value at all
func (v Value) IsNull() bool { return v.shape == shapeNone }

// Text returns the string of a scalar value
func (v Value) Text() string { return v.text }

// Bool returns the flag of a boolean value
func (v Value) Bool() bool { return v.flag }

// Items returns a copy of a multiselect value
func (v Value) Items() []string { return cloneStrings(v.items) }

// fits reports whether v has the shape t stores
func (v Value) fits(t FieldType) bool {
	return v.shape == t.shape()
}

func (v Value) clone() Value {
	v.items = cloneStrings(v.items)
	if v.raw != nil {
		v.raw = append(json.RawMessage(nil), v.raw...)
	}
	return v
}

// convert maps a stored value onto the shape t stores when there is an
// obvious equivalent: "true"/"false" for a boolean, a single string for a
// multiselect. Anything else is returned unchanged.
func (v Value) convert(t FieldType) Value {
	if v.fits(t) {
		return v
	}
	if v.shape == shapeNone {
		return DefaultValue(t)
	}
	if v.shape != shapeText || v.number {
		return v
	}
	switch t.shape() {
	case shapeBool:
		switch strings.ToLower(strings.TrimSpace(v.text)) {
		case "true":
			return BoolValue(true)
		case "false":
			return BoolValue(false)
		}
	case shapeList:
		if strings.TrimSpace(v.text) == "" {
			return ListValue(nil)
		}
		return ListValue([]string{v.text})
	}
	return v
}

// MarshalJSON emits a JSON string, boolean, array or null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.shape {
	case shapeText:
		if v.number {
			return []byte(v.text), nil
		}
		return json.Marshal(v.text)
	case shapeRaw:
		return v.raw, nil
	case shapeBool:
		return json.Marshal(v.flag)
	case shapeList:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts strings, numbers, booleans, arrays of scalars and null.
// Numbers are kept as text in their literal form and array items are turned
// into strings. Objects and nested arrays become raw values.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty custom field value")
	}

	switch data[0] {
	case 'n':
		*v = Value{}
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		items := make([]string, 0, len(elems))
		for _, elem := range elems {
			var item Value
			if err := item.UnmarshalJSON(elem); err != nil {
				return err
			}
			switch item.shape {
			case shapeText:
				items = append(items, item.text)
			case shapeBool:
				items = append(items, strconv.FormatBool(item.flag))
			default:
				*v = rawValue(data)
				return nil
			}
		}
		*v = ListValue(items)
		return nil
	case '{':
		if !json.Valid(data) {
			return fmt.Errorf("invalid custom field value")
		}
		*v = rawValue(data)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Value{shape: shapeText, text: n.String(), number: true}
	return nil
}

func rawValue(data []byte) Value {
	return Value{shape: shapeRaw, raw: append(json.RawMessage(nil), data...)}
}
