package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Extract parses body as a JSON object and returns the array stored under
// field. A dotted field ("data.list") walks nested objects unless the
// document has a top-level key spelled exactly like field.
//
// The result is never nil for a valid document; an empty upstream array
// yields an empty slice.
func Extract(body []byte, field string) ([]json.RawMessage, error) {
	raw := json.RawMessage(body)
	path := strings.Split(field, ".")

	for i, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			where := "document"
			if i > 0 {
				where = fmt.Sprintf("field %q", strings.Join(path[:i], "."))
			}
			return nil, &FormatError{Field: field, Msg: where + " is not a JSON object", Err: err}
		}

		if i == 0 && len(path) > 1 {
			if literal, ok := obj[field]; ok {
				raw = literal
				break
			}
		}

		next, ok := obj[key]
		if !ok {
			return nil, &FormatError{Field: field, Msg: fmt.Sprintf("field %q is missing", field)}
		}
		raw = next
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &FormatError{Field: field, Msg: fmt.Sprintf("field %q is not an array", field)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &FormatError{Field: field, Msg: fmt.Sprintf("field %q is not an array", field), Err: err}
	}
	if items == nil {
		items = []json.RawMessage{}
	}

	return items, nil
}
