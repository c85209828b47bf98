package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"09:05", 545, true},
		{" 21:00 ", 1260, true},
		{"0:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"ab:cd", 0, false},
		{"0900", 0, false},
		{"", 0, false},
		{"-1:30", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimeToMinutes(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ok for %q", tt.in)
		assert.Equal(t, tt.want, got, "minutes for %q", tt.in)
	}
}

func TestMinutesToTimeStringRoundTrip(t *testing.T) {
	for m := 9 * 60; m <= 21*60; m++ {
		s := MinutesToTimeString(m)
		got, ok := ParseTimeToMinutes(s)
		if !ok || got != m {
			t.Fatalf("round trip %d -> %q -> %d (ok=%v)", m, s, got, ok)
		}
	}

	m, ok := ParseTimeToMinutes("09:05")
	assert.True(t, ok)
	assert.Equal(t, "09:05", MinutesToTimeString(m))
	assert.Equal(t, "00:00", MinutesToTimeString(-15))
	assert.Equal(t, "25:10", MinutesToTimeString(25*60+10))
}

func TestClampMinutes(t *testing.T) {
	assert.Equal(t, 540, ClampMinutes(0, false, 540, 1260))
	assert.Equal(t, 540, ClampMinutes(480, true, 540, 1260))
	assert.Equal(t, 1260, ClampMinutes(1300, true, 540, 1260))
	assert.Equal(t, 600, ClampMinutes(600, true, 540, 1260))
}
