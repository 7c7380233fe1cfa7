package calendar

// foldLength is the maximum physical line length from RFC 5545 section 3.1.
const foldLength = 75

// FoldLine splits a single unfolded content line into physical lines no
// longer than 75 octets. Every continuation line starts with exactly one
// space, so unfolding (dropping one leading space per continuation)
// reconstructs the input byte for byte. Lines already short enough are
// returned unchanged, which makes folding safe to apply to every line.
func FoldLine(line string) []string {
	var folded []string
	for len(line) > foldLength {
		folded = append(folded, line[:foldLength])
		line = " " + line[foldLength:]
	}
	return append(folded, line)
}
