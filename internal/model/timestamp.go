package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// TimestampLayout is the wire format: UTC, millisecond precision, 'Z' designator.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is an instant normalized to UTC and truncated to milliseconds,
// which is the precision the API promises to round-trip.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// TimestampOf returns a pointer to the normalized t, handy for optional fields.
func TimestampOf(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

// TimestampFromTime converts a nullable column value.
func TimestampFromTime(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	return TimestampOf(*t)
}

// TimeOrNil returns the column value of an optional timestamp.
func (t *Timestamp) TimeOrNil() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("timestamp must be ISO-8601 (e.g. 1970-01-01T00:00:00.000Z): %w", err)
	}

	*t = NewTimestamp(parsed)
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// jsonFieldName makes validator report "earnedAt" instead of "EarnedAt".
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
