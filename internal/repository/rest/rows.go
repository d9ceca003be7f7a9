package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// rowID accepts both uuid (string) and identity (number) primary keys.
type rowID string

func (id *rowID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = rowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = rowID(n.String())
	return nil
}

// rowTime accepts timestamptz values and timestamp values without a zone, which
// are read as UTC.
type rowTime time.Time

var rowTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *rowTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = rowTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	for _, layout := range rowTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = rowTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("created_at: unsupported timestamp %q", s)
}
