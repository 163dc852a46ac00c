package chipscript

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "a normal date",
			input: 1 | 4<<5 | 45<<9,
			want:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "the epoch",
			input: 1 | 1<<5,
			want:  time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day 0 is invalid",
			input: 0 | 4<<5 | 45<<9,
			want:  time.Time{},
		},
		{
			name:  "month 0 is invalid",
			input: 1 | 0<<5 | 45<<9,
			want:  time.Time{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseDate(%#x) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "a normal time",
			input: 2 | 4<<5 | 12<<11,
			want:  time.Date(1, 1, 1, 12, 4, 4, 0, time.UTC),
		},
		{
			name:  "midnight stays the zero time",
			input: 0,
			want:  time.Time{},
		},
		{
			name:  "out of range values are clamped to the same day",
			input: 31 | 63<<5 | 31<<11,
			want:  time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTime(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseTime(%#x) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
