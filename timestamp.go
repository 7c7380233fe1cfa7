package calendar

import (
	"strings"
	"time"
)

const (
	icalTimestampFormatUtc   = "20060102T150405Z"
	icalTimestampFormatLocal = "20060102T150405"
)

// formatLocal renders t using the wall-clock fields of the generator's
// configured zone, for use with a TZID parameter (RFC 5545 section 3.3.5
// form 3).
func (g *Generator) formatLocal(t time.Time) string {
	return t.In(g.loc).Format(icalTimestampFormatLocal)
}

// formatUTC renders t in form 2, UTC with the trailing Z designator.
func formatUTC(t time.Time) string {
	return t.UTC().Format(icalTimestampFormatUtc)
}

var descriptionEscaper = strings.NewReplacer(
	"\r\n", `\n`,
	"\n", `\n`,
)

// escapeDescription replaces literal newlines with the two character \n
// escape sequence per RFC 5545 section 3.3.11. Other TEXT escapes are left
// to upstream form validation, matching the generator's wire contract.
func escapeDescription(s string) string {
	return descriptionEscaper.Replace(s)
}
