package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    [3]int
		wantErr bool
	}{
		{"1990-01-15", [3]int{1990, 1, 15}, false},
		{"1990.1.5", [3]int{1990, 1, 5}, false},
		{"1990/12/31", [3]int{1990, 12, 31}, false},
		{"  2024-02-30 ", [3]int{2024, 2, 30}, false}, // lunar months have a 30th
		{"2024-13-01", [3]int{}, true},
		{"2024-00-10", [3]int{}, true},
		{"2024-01-32", [3]int{}, true},
		{"90-01-15", [3]int{}, true},
		{"yesterday", [3]int{}, true},
		{"", [3]int{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, m, d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, [3]int{y, m, d})
		})
	}
}

func TestParseSolarDate(t *testing.T) {
	_, _, _, err := ParseSolarDate("2024-02-29")
	assert.NoError(t, err)

	for _, bad := range []string{"2023-02-29", "2024-02-30", "2024-04-31"} {
		_, _, _, err := ParseSolarDate(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    [3]int
		wantErr bool
	}{
		{"23:00", [3]int{23, 0, 0}, false},
		{"7:05", [3]int{7, 5, 0}, false},
		{"00:30:15", [3]int{0, 30, 15}, false},
		{"24:00", [3]int{}, true},
		{"12:60", [3]int{}, true},
		{"12:30:60", [3]int{}, true},
		{"noon", [3]int{}, true},
		{"1230", [3]int{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, s, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, [3]int{h, m, s})
		})
	}
}
