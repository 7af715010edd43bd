package remote

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexTime_ThreeShapesDecodeEqual(t *testing.T) {
	// 2000-05-15T10:30:00Z in all three stored shapes.
	want := time.Date(2000, 5, 15, 10, 30, 0, 0, time.UTC)

	inputs := map[string]string{
		"timestamp object":   `{"_seconds":958386600,"_nanoseconds":0}`,
		"iso string":         `"2000-05-15T10:30:00Z"`,
		"epoch milliseconds": `958386600000`,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			var ft FlexTime
			require.NoError(t, json.Unmarshal([]byte(in), &ft))
			assert.True(t, ft.Time.Equal(want), "got %v, want %v", ft.Time, want)
			assert.Equal(t, time.UTC, ft.Time.Location())
		})
	}
}

func TestFlexTime_DateOnlyString(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2012-01-01"`), &ft))
	assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), ft.Time)
}

func TestFlexTime_Null(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &ft))
	assert.True(t, ft.Time.IsZero())
}

func TestFlexTime_RejectsUnknownShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "object without _seconds", in: `{"nanos":5}`},
		{name: "garbage string", in: `"yesterday"`},
		{name: "boolean", in: `true`},
		{name: "array", in: `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			require.Error(t, json.Unmarshal([]byte(tt.in), &ft))
		})
	}
}

func TestFlexTime_MarshalRoundTrip(t *testing.T) {
	orig := NewFlexTime(time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC))
	b, err := json.Marshal(orig)
	require.NoError(t, err)

	var back FlexTime
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Time.Equal(orig.Time))
}
