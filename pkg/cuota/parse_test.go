package cuota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "date only is UTC midnight",
			input:    "2024-01-01",
			expected: date(2024, 1, 1),
		},
		{
			name:     "surrounding whitespace",
			input:    " 2024-01-01 ",
			expected: date(2024, 1, 1),
		},
		{
			name:     "RFC3339 UTC",
			input:    "2024-01-01T00:00:00Z",
			expected: date(2024, 1, 1),
		},
		{
			name:     "RFC3339 with fraction",
			input:    "2024-01-01T08:30:00.250Z",
			expected: time.Date(2024, 1, 1, 8, 30, 0, 250000000, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    "2024-01-01T05:00:00-05:00",
			expected: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "timestamp without zone is UTC",
			input:    "2024-01-01T12:00:00",
			expected: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "timestamp without seconds",
			input:    "2024-01-01T12:00",
			expected: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{name: "slash separated", input: "01/02/2024", wantErr: true},
		{name: "day first", input: "01-02-2024", wantErr: true},
		{name: "impossible month", input: "2024-13-01", wantErr: true},
		{name: "impossible day", input: "2024-02-30", wantErr: true},
		{name: "garbage", input: "mañana", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result), "expected %v, got %v", tt.expected, result)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	absent, err := ParseOptionalDate("   ")
	require.NoError(t, err)
	assert.Nil(t, absent)

	present, err := ParseOptionalDate("2024-02-16")
	require.NoError(t, err)
	require.NotNil(t, present)
	assert.True(t, date(2024, 2, 16).Equal(*present))

	_, err = ParseOptionalDate("2024/02/16")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
