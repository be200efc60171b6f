package timeconv

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiletime(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		shaped bool
		want   time.Time
	}{
		{
			// 116444736000000000 ticks is the unix epoch.
			name:   "unix epoch",
			value:  "116444736000000000",
			shaped: true,
			want:   time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "zero means no time",
			value:  "0",
			shaped: true,
			want:   time.Time{},
		},
		{
			name:   "few ticks still no time",
			value:  "9",
			shaped: true,
			want:   time.Time{},
		},
		{
			name:   "past maximum clamps",
			value:  "2650467744000000000000",
			shaped: true,
			want:   maxInstant,
		},
		{
			name:   "not all digits",
			value:  "20150402113224.0Z",
			shaped: false,
		},
		{
			name:   "empty string",
			value:  "",
			shaped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shaped := ParseFiletime(tt.value)
			require.Equal(t, tt.shaped, shaped)

			if tt.shaped {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFiletimeNeverExceedsMax(t *testing.T) {
	// One microsecond past the representable maximum must clamp, not wrap.
	pastMax := (maxMicroseconds() + 1) * 10

	got, shaped := ParseFiletime(formatInt(pastMax))
	require.True(t, shaped)
	assert.True(t, got.Equal(maxInstant))
}

func TestParseGeneralized(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		shaped bool
		want   time.Time
	}{
		{
			name:   "plain",
			value:  "20150402113224Z",
			shaped: true,
			want:   time.Date(2015, time.April, 2, 11, 32, 24, 0, time.UTC),
		},
		{
			name:   "with fraction",
			value:  "20150402113224.123Z",
			shaped: true,
			want:   time.Date(2015, time.April, 2, 11, 32, 24, 0, time.UTC),
		},
		{
			name:   "month out of range",
			value:  "20151302113224Z",
			shaped: false,
		},
		{
			name:   "missing zone suffix",
			value:  "20150402113224",
			shaped: false,
		},
		{
			name:   "filetime shaped",
			value:  "130717192291950000",
			shaped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shaped := ParseGeneralized(tt.value)
			require.Equal(t, tt.shaped, shaped)

			if tt.shaped {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeneralizedRoundTrip(t *testing.T) {
	// Decoding then re-encoding keeps the calendar components.
	values := []string{
		"20150402113224Z",
		"19601231235959Z",
		"20240229000000Z",
	}

	for _, value := range values {
		decoded, ok := ParseGeneralized(value)
		require.True(t, ok, "value %q should decode", value)

		reencoded := decoded.Format("20060102150405") + "Z"
		assert.Equal(t, value, reencoded)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		want       string
		recognized bool
	}{
		{"filetime", "116444736000000000", "1970-01-01T00:00:00Z", true},
		{"filetime zero", "0", "", true},
		{"clamped", "9999999999999999999999999", "9999-12-31T23:59:59.999999Z", true},
		{"date string", "20150402113224Z", "2015-04-02T11:32:24Z", true},
		{"opaque passthrough", "CN=Users,DC=example,DC=test", "CN=Users,DC=example,DC=test", false},
		{"mixed digits passthrough", "12a3", "12a3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recognized := Normalize(tt.value)
			assert.Equal(t, tt.recognized, recognized)
			assert.Equal(t, tt.want, got)
		})
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
