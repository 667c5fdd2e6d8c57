package entity

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"cooked/internal/errors"
)

// localLayouts are the zone-less date-time shapes the backend emits.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Timestamp is a point in time decoded leniently from the backend.
// A zero Timestamp means absent.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// ParseTimestamp accepts RFC3339 and the zone-less local layouts.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON decodes strings and epoch milliseconds; null and "" leave it zero.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}

		return nil
	}

	if data[0] != '"' {
		var millis int64
		if err := json.Unmarshal(data, &millis); err != nil {
			return errors.Wrap(err, "timestamp")
		}
		t.Time = time.UnixMilli(millis)

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "timestamp")
	}
	if strings.TrimSpace(s) == "" {
		t.Time = time.Time{}

		return nil
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed

	return nil
}

// MarshalJSON writes RFC3339, or null when absent.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Format(time.RFC3339Nano))
}

// IsSet reports whether a possibly-nil timestamp carries a value.
func (t *Timestamp) IsSet() bool {
	return t != nil && !t.IsZero()
}
