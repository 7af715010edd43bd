package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime is a time.Time that decodes from the three shapes profile
// documents have been observed to carry:
//
//  1. an object {"_seconds": N, "_nanoseconds": N} (native store timestamp),
//  2. an ISO-8601 string,
//  3. a number of epoch milliseconds.
//
// All three normalize to a canonical UTC instant on decode. Encoding always
// produces the ISO-8601 string form. The ambiguity stops at this boundary:
// nothing past the adapter ever sees a non-canonical value.
type FlexTime struct {
	time.Time
}

// NewFlexTime wraps t, normalized to UTC.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t.UTC()}
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '{':
		var ts struct {
			Seconds     *int64 `json:"_seconds"`
			Nanoseconds int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(data, &ts); err != nil {
			return fmt.Errorf("timestamp object: %w", err)
		}
		if ts.Seconds == nil {
			return fmt.Errorf("timestamp object missing _seconds: %s", data)
		}
		t.Time = time.Unix(*ts.Seconds, ts.Nanoseconds).UTC()
		return nil

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			parsed, err := time.Parse(layout, s)
			if err == nil {
				t.Time = parsed.UTC()
				return nil
			}
		}
		return fmt.Errorf("unrecognized time string %q", s)

	default:
		var ms json.Number
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("unrecognized time value %s", data)
		}
		n, err := ms.Int64()
		if err != nil {
			f, ferr := ms.Float64()
			if ferr != nil {
				return fmt.Errorf("unrecognized time number %s", ms)
			}
			n = int64(f)
		}
		t.Time = time.UnixMilli(n).UTC()
		return nil
	}
}
