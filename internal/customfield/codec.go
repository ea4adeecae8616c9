package customfield

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode parses the custom field blob stored on a record.
// An empty blob means the record never had custom fields and decodes to nil.
func Decode(blob string) (Fields, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil
	}

	var fields Fields
	if err := json.Unmarshal([]byte(blob), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFields, err)
	}
	if fields == nil {
		// "null" is stored by some legacy writers for an empty list
		return Fields{}, nil
	}

	// values written by older clients may not have the shape their type
	// stores; convert the obvious ones and keep the rest as they are
	for i := range fields {
		f := &fields[i]
		if f.Type.Valid() {
			f.Value = f.Value.convert(f.Type)
		}
	}
	return fields, nil
}

// Encode serializes fields for storage. A nil list encodes to the empty blob
// and an empty list to "[]" so both decode back to what they were.
func Encode(fields Fields) (string, error) {
	if fields == nil {
		return "", nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode custom fields: %w", err)
	}
	return string(data), nil
}
