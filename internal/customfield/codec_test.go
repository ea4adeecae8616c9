package customfield

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var valueComparer = cmp.Comparer(func(a, b Value) bool {
	return a.shape == b.shape && a.text == b.text && a.number == b.number &&
		a.flag == b.flag && cmp.Equal(a.items, b.items) && string(a.raw) == string(b.raw)
})

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		blob   string
	}{
		{name: "absent", fields: nil, blob: ""},
		{name: "empty", fields: Fields{}, blob: "[]"},
		{
			name: "populated",
			fields: Fields{
				{ID: "1", Name: "nickname", Label: "Nickname", Type: TypeText, Value: TextValue("Bobby")},
				{ID: "2", Name: "remote", Label: "Remote", Type: TypeBoolean, Required: true, Value: BoolValue(true)},
				{ID: "3", Name: "skills", Label: "Skills", Type: TypeMultiSelect, Options: []string{"Go", "SQL"}, Value: ListValue([]string{"Go"})},
				{ID: "4", Name: "level", Label: "Level", Type: TypeSelect, Options: []string{}, Value: TextValue("")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Encode(tt.fields)
			require.NoError(t, err)
			if tt.blob != "" || tt.fields == nil {
				assert.Equal(t, tt.blob, blob)
			}

			decoded, err := Decode(blob)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.fields, decoded, valueComparer); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, blob, again)
		})
	}
}

func TestEncodeWireShape(t *testing.T) {
	blob, err := Encode(Fields{
		{ID: "a", Name: "skills", Label: "Skills", Type: TypeMultiSelect, Options: []string{"Go"}, Value: ListValue(nil)},
	})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "a", raw[0]["id"])
	assert.Equal(t, "skills", raw[0]["name"])
	assert.Equal(t, "Skills", raw[0]["label"])
	assert.Equal(t, "multiselect", raw[0]["type"])
	assert.Equal(t, false, raw[0]["required"])
	assert.Equal(t, []any{"Go"}, raw[0]["options"])
	assert.Equal(t, []any{}, raw[0]["value"])
}

func TestDecodeConvertsMismatchedValues(t *testing.T) {
	blob := `[
		{"id":"1","name":"remote","label":"Remote","type":"boolean","required":false,"options":null,"value":"true"},
		{"id":"2","name":"onsite","label":"Onsite","type":"boolean","required":false,"options":null,"value":" FALSE "},
		{"id":"3","name":"skills","label":"Skills","type":"multiselect","required":false,"options":["Go"],"value":"Go"},
		{"id":"4","name":"tags","label":"Tags","type":"multiselect","required":false,"options":null,"value":""},
		{"id":"5","name":"badges","label":"Badges","type":"multiselect","required":false,"options":null,"value":[1,2]},
		{"id":"6","name":"age","label":"Age","type":"number","required":false,"options":null,"value":null}
	]`

	fields, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, fields, 6)

	assert.Equal(t, shapeBool, fields[0].Value.shape)
	assert.True(t, fields[0].Value.Bool())
	assert.Equal(t, shapeBool, fields[1].Value.shape)
	assert.False(t, fields[1].Value.Bool())
	assert.Equal(t, []string{"Go"}, fields[2].Value.Items())
	assert.Equal(t, []string{}, fields[3].Value.Items())
	assert.Equal(t, []string{"1", "2"}, fields[4].Value.Items())
	assert.Equal(t, shapeText, fields[5].Value.shape, "null reads as the type default")
	assert.Equal(t, "", fields[5].Value.Text())
}

func TestDecodeKeepsUnconvertibleValues(t *testing.T) {
	blob := `[{"id":"1","name":"remote","label":"Remote","type":"boolean","required":false,"options":null,"value":"yes"},` +
		`{"id":"2","name":"age","label":"Age","type":"number","required":false,"options":null,"value":42},` +
		`{"id":"3","name":"rate","label":"Rate","type":"text","required":false,"options":null,"value":3.50},` +
		`{"id":"4","name":"address","label":"Address","type":"text","required":false,"options":null,"value":{"city":"Oslo","zip":[1,2]}},` +
		`{"id":"5","name":"mixed","label":"Mixed","type":"multiselect","required":false,"options":null,"value":["a",null]},` +
		`{"id":"6","name":"nickname","label":"Nickname","type":"text","required":false,"options":null,"value":true},` +
		`{"id":"7","name":"legacy","label":"Legacy","type":"rating","required":false,"options":null,"value":true}]`

	fields, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, fields, 7)

	assert.Equal(t, "yes", fields[0].Value.Text())
	assert.Equal(t, "42", fields[1].Value.Text())
	assert.Equal(t, shapeRaw, fields[3].Value.shape)
	assert.Equal(t, shapeRaw, fields[4].Value.shape)
	assert.True(t, fields[5].Value.Bool())
	assert.True(t, fields[6].Value.Bool(), "unknown types keep their value untouched")
	for _, f := range fields {
		assert.False(t, f.IsEmpty(), f.Name)
	}

	again, err := Encode(fields)
	require.NoError(t, err)
	assert.JSONEq(t, blob, again)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(`{"not":"a list"}`)
	assert.ErrorIs(t, err, ErrMalformedFields)

	_, err = Decode(`[{"id":1,"value":"x"}]`)
	assert.ErrorIs(t, err, ErrMalformedFields)

	fields, err := Decode("null")
	require.NoError(t, err)
	assert.NotNil(t, fields)
	assert.Empty(t, fields)

	fields, err = Decode("   ")
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Programming Skills":    "programming_skills",
		"  Shirt   Size ":       "shirt_size",
		"already_normal":        "already_normal",
		"Tab\tSeparated\nLines": "tab_separated_lines",
		"   ":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestValueUnmarshal(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &v))
	assert.Equal(t, []string{"a", "b"}, v.Items())

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsNull())

	require.NoError(t, json.Unmarshal([]byte(`3.50`), &v))
	assert.Equal(t, "3.50", v.Text())
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `3.50`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`[1,"b",true]`), &v))
	assert.Equal(t, []string{"1", "b", "true"}, v.Items())

	require.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &v))
	assert.Equal(t, shapeRaw, v.shape)
	out, err = json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`[[1],2]`), &v))
	assert.Equal(t, shapeRaw, v.shape)
}
