package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	items, err := Extract([]byte(`{"videos":[{"id":1},{"id":2}],"total":2}`), "videos")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.JSONEq(t, `{"id":1}`, string(items[0]))
	assert.JSONEq(t, `{"id":2}`, string(items[1]))
}

func TestExtractKeepsRecordsOpaque(t *testing.T) {
	body := `{"list":[1,"two",null,{"nested":{"deep":[true]}},[3]]}`

	items, err := Extract([]byte(body), "list")
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, json.RawMessage(`null`), items[2])
	assert.JSONEq(t, `{"nested":{"deep":[true]}}`, string(items[3]))
}

func TestExtractEmptyArray(t *testing.T) {
	items, err := Extract([]byte(`{"videos": [ ] }`), "videos")
	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtractNestedField(t *testing.T) {
	items, err := Extract([]byte(`{"data":{"list":[{"id":"a"}]}}`), "data.list")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestExtractDottedKey(t *testing.T) {
	items, err := Extract([]byte(`{"data.list":[1,2]}`), "data.list")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = Extract([]byte(`{"data.list":[1],"data":{"list":[1,2,3]}}`), "data.list")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestExtractFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		wantMsg string
	}{
		{name: "missing field", body: `{"list":[]}`, field: "videos", wantMsg: `field "videos" is missing`},
		{name: "null field", body: `{"videos":null}`, field: "videos", wantMsg: `field "videos" is not an array`},
		{name: "object field", body: `{"videos":{"a":1}}`, field: "videos", wantMsg: `field "videos" is not an array`},
		{name: "string field", body: `{"videos":"[]"}`, field: "videos", wantMsg: `field "videos" is not an array`},
		{name: "top-level array", body: `[{"id":1}]`, field: "videos", wantMsg: "document is not a JSON object"},
		{name: "not json", body: `<html>502</html>`, field: "videos", wantMsg: "document is not a JSON object"},
		{name: "null document", body: `null`, field: "videos", wantMsg: "document is not a JSON object"},
		{name: "empty body", body: ``, field: "videos", wantMsg: "document is not a JSON object"},
		{name: "nested parent not object", body: `{"data":[1]}`, field: "data.list", wantMsg: `field "data" is not a JSON object`},
		{name: "nested missing", body: `{"data":{}}`, field: "data.list", wantMsg: `field "data.list" is missing`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Extract([]byte(tt.body), tt.field)
			require.Error(t, err)
			assert.Nil(t, items)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.field, formatErr.Field)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, IsFormatError(err))
			assert.False(t, IsFetchError(err))
		})
	}
}
