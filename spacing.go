package mdnum

import "strings"

// spaceHeadings inserts a blank line before and after every line flagged in
// headings unless one is already there. Existing blank lines are kept as they
// are.
func spaceHeadings(lines []line, headings []bool) []line {
	out := make([]line, 0, len(lines)+2*countTrue(headings))
	for i, l := range lines {
		if !headings[i] {
			out = append(out, l)
			continue
		}
		if n := len(out); n > 0 && !isBlank(out[n-1].text) {
			out = append(out, line{eol: out[n-1].eol})
		}
		out = append(out, l)
		if i+1 < len(lines) && !isBlank(lines[i+1].text) {
			out = append(out, line{eol: l.eol})
		}
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
