package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an opaque backend identifier. The backend mixes numeric and string ids,
// so both decode into the same textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	// Objects and arrays are not ids; treat them as missing.
	*id = ""
	return nil
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id was absent in the payload.
func (id ID) IsZero() bool {
	return id == ""
}

// FirstID returns the first non-empty id, used for payloads that carry both
// "id" and "_id".
func FirstID(ids ...ID) ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}

// ParseNumber reads a JSON number or a numeric string. Anything else yields ok=false.
func ParseNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
