package mdnum

import (
	"strings"
	"testing"
)

func TestParseHeading(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line  string
		ok    bool
		level int
		text  string
	}{
		{line: "# Title", ok: true, level: 1, text: "Title"},
		{line: "###### Deep", ok: true, level: 6, text: "Deep"},
		{line: "##\tTabbed", ok: true, level: 2, text: "Tabbed"},
		{line: "##   Spaced  ", ok: true, level: 2, text: "Spaced  "},
		{line: "## Closed ##", ok: true, level: 2, text: "Closed ##"},
		{line: "####### Seven", ok: false},
		{line: "#hashtag", ok: false},
		{line: "#", ok: false},
		{line: "# #", ok: false},
		{line: "## ### ", ok: false},
		{line: "# C#", ok: true, level: 1, text: "C#"},
		{line: "##   ", ok: false},
		{line: " # Indented", ok: false},
		{line: "Text # not a heading", ok: false},
		{line: "", ok: false},
	}
	for _, tc := range tests {
		h, ok := ParseHeading(tc.line)
		if ok != tc.ok {
			t.Fatalf("ParseHeading(%q) ok=%v want %v", tc.line, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if h.Level != tc.level || h.Text != tc.text {
			t.Fatalf("ParseHeading(%q)=%+v want level %d text %q", tc.line, h, tc.level, tc.text)
		}
	}
}

func headingLines(levels []int) []string {
	lines := make([]string, len(levels))
	for i, level := range levels {
		lines[i] = strings.Repeat("#", level) + " Section"
	}
	return lines
}

func labelsOf(t *testing.T, lines []string) []string {
	t.Helper()
	var labels []string
	for _, line := range lines {
		h, ok := ParseHeading(line)
		if !ok {
			continue
		}
		label, _, found := strings.Cut(h.Text, " ")
		if !found {
			t.Fatalf("heading without label: %q", line)
		}
		labels = append(labels, label)
	}
	return labels
}

func TestNumberLinesLabels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		levels []int
		want   []string
	}{
		{name: "skip-to-deeper", levels: []int{1, 2, 2, 1, 3}, want: []string{"1", "1.1", "1.2", "2", "2.1"}},
		{name: "reset-deeper", levels: []int{1, 2, 2, 1, 2}, want: []string{"1", "1.1", "1.2", "2", "2.1"}},
		{name: "nested", levels: []int{1, 2, 3, 3, 2, 3}, want: []string{"1", "1.1", "1.1.1", "1.1.2", "1.2", "1.2.1"}},
		{name: "all-levels", levels: []int{1, 2, 3, 4, 5, 6}, want: []string{"1", "1.1", "1.1.1", "1.1.1.1", "1.1.1.1.1", "1.1.1.1.1.1"}},
		{name: "flat", levels: []int{2, 2, 2}, want: []string{"1", "2", "3"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := labelsOf(t, NumberLines(headingLines(tc.levels)))
			if strings.Join(got, " ") != strings.Join(tc.want, " ") {
				t.Fatalf("labels=%v want %v", got, tc.want)
			}
		})
	}
}

func TestNumberLinesLabelComponentsMatchLevel(t *testing.T) {
	t.Parallel()
	levels := []int{1, 2, 3, 2, 3, 4, 1, 2, 3, 4, 5, 6, 6, 1}
	out := NumberLines(headingLines(levels))
	for i, label := range labelsOf(t, out) {
		parts := strings.Split(label, ".")
		if len(parts) != levels[i] {
			t.Fatalf("heading %d level %d got label %q", i, levels[i], label)
		}
		for _, p := range parts {
			if p == "" || p == "0" || strings.HasPrefix(p, "-") {
				t.Fatalf("non-positive component in %q", label)
			}
		}
	}
}

func TestNumberLinesPassesThroughNonHeadings(t *testing.T) {
	t.Parallel()
	in := []string{"intro", "", "# Title", "body text", "#tag", "  ## indented", "## Sub", "- item"}
	out := NumberLines(in)
	if len(out) != len(in) {
		t.Fatalf("len=%d want %d", len(out), len(in))
	}
	want := []string{"intro", "", "# 1 Title", "body text", "#tag", "  ## indented", "## 1.1 Sub", "- item"}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("line %d=%q want %q", i, out[i], want[i])
		}
	}
	if in[2] != "# Title" {
		t.Fatalf("input slice modified: %q", in[2])
	}
}

func TestNumberLinesEmpty(t *testing.T) {
	t.Parallel()
	if out := NumberLines(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}

func TestNumberLinesIdempotent(t *testing.T) {
	t.Parallel()
	in := headingLines([]int{1, 2, 2, 1, 3, 3, 2})
	once := NumberLines(in)
	twice := NumberLines(once)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("line %d changed on second run: %q -> %q", i, once[i], twice[i])
		}
	}
}

func TestNumberLinesRenumbersStaleLabels(t *testing.T) {
	t.Parallel()
	in := []string{"# 3 Intro", "## 3.4 Scope", "## 9.9. Limits", "# 2024 Review"}
	want := []string{"# 1 Intro", "## 1.1 Scope", "## 1.2 Limits", "# 2 Review"}
	out := NumberLines(in)
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("line %d=%q want %q", i, out[i], want[i])
		}
	}
}

func TestNumberLinesWithoutStrip(t *testing.T) {
	t.Parallel()
	out := NumberLines([]string{"# 1 Intro"}, WithStripExisting(false))
	if out[0] != "# 1 1 Intro" {
		t.Fatalf("unexpected line %q", out[0])
	}
}

func TestNumberLinesMaxLevel(t *testing.T) {
	t.Parallel()
	in := []string{"# A", "## B", "### C", "## D", "### E"}
	want := []string{"# 1 A", "## 1.1 B", "### C", "## 1.2 D", "### E"}
	out := NumberLines(in, WithMaxLevel(2))
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("line %d=%q want %q", i, out[i], want[i])
		}
	}
}

func TestStripLabelKeepsBareNumbers(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"1 Intro":   "Intro",
		"1. Intro":  "Intro",
		"1":         "1",
		"1.2 Intro": "1.2 Intro",
		"Intro 1":   "Intro 1",
		"1x Intro":  "1x Intro",
	}
	for in, want := range cases {
		if got := stripLabel(in, 1); got != want {
			t.Fatalf("stripLabel(%q, 1)=%q want %q", in, got, want)
		}
	}
}

func TestNumbererReset(t *testing.T) {
	t.Parallel()
	n := NewNumberer()
	n.Next(1)
	n.Next(2)
	n.Reset()
	if got := n.Next(2); got != "1" {
		t.Fatalf("label after reset=%q want %q", got, "1")
	}
}
