package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOTime_MarshalBrowserFormat(t *testing.T) {
	ts := NewISOTime(time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.FixedZone("X", 3*3600)))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05T04:08:09.123Z"`, string(out))
}

func TestISOTime_ZeroIsNull(t *testing.T) {
	out, err := json.Marshal(ISOTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestISOTime_UnmarshalTolerant(t *testing.T) {
	cases := map[string]bool{
		`"2024-01-01T00:00:00.000Z"`:  true,
		`"2024-01-01T10:00:00+02:00"`: true,
		`"2024-01-01"`:                true,
		`"not a date"`:                false,
		`null`:                        false,
		`12345`:                       false,
		`""`:                          false,
	}
	for input, valid := range cases {
		var ts ISOTime
		require.NoError(t, json.Unmarshal([]byte(input), &ts), input)
		assert.Equal(t, !valid, ts.IsZero(), input)
	}
}

func TestParseISO_NormalizesToUTC(t *testing.T) {
	ts, ok := ParseISO("2024-01-01T10:00:00+02:00")
	require.True(t, ok)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, 8, ts.Hour())
}
