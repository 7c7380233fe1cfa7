package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUTC(t *testing.T) {
	instant := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "20250309T080000Z", formatUTC(instant))
}

func TestFormatLocalAcrossDSTBoundary(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			// 07:59:59Z is 01:59:59 CST, one second before the spring
			// forward transition.
			name:     "before transition",
			instant:  time.Date(2025, 3, 9, 7, 59, 59, 0, time.UTC),
			expected: "20250309T015959",
		},
		{
			// 08:00:00Z is 03:00:00 CDT; the 02:00 local hour does not
			// exist on this day.
			name:     "at transition",
			instant:  time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC),
			expected: "20250309T030000",
		},
		{
			name:     "plain summer instant",
			instant:  time.Date(2025, 6, 16, 22, 0, 0, 0, time.UTC),
			expected: "20250616T170000",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, g.formatLocal(tc.instant))
		})
	}
}

func TestEscapeDescription(t *testing.T) {
	assert.Equal(t, `Case: Smith\nSee notes`, escapeDescription("Case: Smith\nSee notes"))
	assert.Equal(t, `a\nb\nc`, escapeDescription("a\r\nb\nc"))
	assert.Equal(t, "no newlines", escapeDescription("no newlines"))
}
