package models

import (
	"bytes"
	"time"

	json "github.com/goccy/go-json"
)

// ISOLayout matches the browser's Date.prototype.toISOString output.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// ISOTime is a UTC instant encoded as an ISO-8601 string with millisecond
// precision. The zero value encodes as null. Decoding never fails: null,
// empty and malformed strings all become the zero value.
type ISOTime struct {
	time.Time
}

func NewISOTime(t time.Time) ISOTime {
	return ISOTime{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t ISOTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOLayout)
}

func (t ISOTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	parsed, ok := ParseISO(s)
	if ok {
		t.Time = parsed
	}
	return nil
}

// ParseISO accepts RFC 3339 timestamps with or without fractional seconds,
// and bare YYYY-MM-DD dates (read as UTC midnight).
func ParseISO(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), true
	}
	if ts, err := time.Parse(DateKeyLayout, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
