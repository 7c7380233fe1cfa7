package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unfold(lines []string) string {
	joined := lines[0]
	for _, l := range lines[1:] {
		joined += l[1:]
	}
	return joined
}

func TestFoldLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty line",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "short line unchanged",
			input:    "SUMMARY:short",
			expected: []string{"SUMMARY:short"},
		},
		{
			name:     "exactly 75 octets unchanged",
			input:    strings.Repeat("a", 75),
			expected: []string{strings.Repeat("a", 75)},
		},
		{
			name:     "76 octets folds once",
			input:    strings.Repeat("a", 76),
			expected: []string{strings.Repeat("a", 75), " a"},
		},
		{
			name:  "long line folds repeatedly",
			input: strings.Repeat("b", 160),
			expected: []string{
				strings.Repeat("b", 75),
				" " + strings.Repeat("b", 74),
				" " + strings.Repeat("b", 11),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FoldLine(tc.input)
			assert.Equal(t, tc.expected, got)
			for _, l := range got {
				assert.LessOrEqual(t, len(l), 75)
			}
			assert.Equal(t, tc.input, unfold(got))
		})
	}
}

func TestFoldLineContinuationsStartWithOneSpace(t *testing.T) {
	got := FoldLine("DESCRIPTION:" + strings.Repeat("x y ", 60))
	for i, l := range got[1:] {
		if !strings.HasPrefix(l, " ") {
			t.Errorf("continuation %d does not start with a space: %q", i+1, l)
		}
	}
}
