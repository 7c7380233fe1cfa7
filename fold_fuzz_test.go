//go:build go1.18
// +build go1.18

package calendar

import (
	"strings"
	"testing"
)

func FuzzFoldLine(f *testing.F) {
	f.Add("SUMMARY:short")
	f.Add(strings.Repeat("a", 75))
	f.Add(strings.Repeat("b", 200))
	f.Add("DESCRIPTION:line with spaces and trailing space ")
	f.Fuzz(func(t *testing.T, line string) {
		folded := FoldLine(line)
		for i, l := range folded {
			if len(l) > 75 {
				t.Errorf("line %d exceeds 75 octets: %d", i, len(l))
			}
			if i > 0 && !strings.HasPrefix(l, " ") {
				t.Errorf("continuation %d missing leading space: %q", i, l)
			}
		}
		if unfold(folded) != line {
			t.Errorf("unfold does not round-trip %q", line)
		}
	})
}
