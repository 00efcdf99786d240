package mdnum

import (
	"strconv"
	"strings"
)

// MaxHeadingLevel is the deepest ATX heading level.
const MaxHeadingLevel = 6

// Heading is a parsed ATX heading line.
type Heading struct {
	Level int
	Text  string
}

// ParseHeading reports whether line is a heading: one to six '#' at column 0,
// whitespace, then text that is not blank and not only a closing '#' run.
// Text is returned without the leading whitespace.
func ParseHeading(line string) (Heading, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingLevel || level == len(line) {
		return Heading{}, false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return Heading{}, false
	}
	text := strings.TrimLeft(line[level:], " \t")
	if strings.Trim(text, "# \t") == "" {
		return Heading{}, false
	}
	return Heading{Level: level, Text: text}, true
}

// Numberer holds the counter vector for one document.
type Numberer struct {
	counters []int
	maxLevel int
	strip    bool
}

// NewNumberer returns a Numberer with an empty counter vector.
func NewNumberer(opts ...Option) *Numberer {
	cfg := buildOptions(opts)
	return newNumberer(cfg)
}

func newNumberer(cfg options) *Numberer {
	return &Numberer{
		counters: make([]int, 0, MaxHeadingLevel),
		maxLevel: cfg.maxLevel,
		strip:    cfg.stripExisting,
	}
}

// Reset clears the counter vector.
func (n *Numberer) Reset() {
	n.counters = n.counters[:0]
}

// Next advances the counter at level and returns the dotted label for it.
// Counters deeper than level are dropped. Parent levels that were skipped
// stay at zero and are left out of the label, so a "###" directly under a
// "#" numbered 2 is labeled "2.1".
func (n *Numberer) Next(level int) string {
	if level < 1 {
		return ""
	}
	if len(n.counters) > level {
		n.counters = n.counters[:level]
	}
	for len(n.counters) < level {
		n.counters = append(n.counters, 0)
	}
	n.counters[level-1]++
	return n.label()
}

func (n *Numberer) label() string {
	var b strings.Builder
	for _, c := range n.counters {
		if c == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// Rewrite numbers line when it is a heading within the configured depth and
// reports whether it did. Other lines are returned unchanged.
func (n *Numberer) Rewrite(line string) (string, bool) {
	h, ok := ParseHeading(line)
	if !ok || h.Level > n.maxLevel {
		return line, false
	}
	label := n.Next(h.Level)
	text := h.Text
	if n.strip {
		text = stripLabel(text, strings.Count(label, ".")+1)
	}
	var b strings.Builder
	b.Grow(h.Level + len(label) + len(text) + 2)
	for i := 0; i < h.Level; i++ {
		b.WriteByte('#')
	}
	b.WriteByte(' ')
	b.WriteString(label)
	b.WriteByte(' ')
	b.WriteString(text)
	return b.String(), true
}

// NumberLines numbers every heading in lines and returns a slice of the same
// length. The input slice is not modified.
func NumberLines(lines []string, opts ...Option) []string {
	n := NewNumberer(opts...)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i], _ = n.Rewrite(line)
	}
	return out
}

// stripLabel removes a leading label of exactly parts components ("1.2" or
// "1.2.") from text. A label that is the whole heading text is kept.
func stripLabel(text string, parts int) string {
	i := 0
	for part := 0; part < parts; part++ {
		if part > 0 {
			if i >= len(text) || text[i] != '.' {
				return text
			}
			i++
		}
		start := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		if i == start {
			return text
		}
	}
	if i < len(text) && text[i] == '.' {
		i++
	}
	if i >= len(text) || (text[i] != ' ' && text[i] != '\t') {
		return text
	}
	rest := strings.TrimLeft(text[i:], " \t")
	if strings.TrimSpace(rest) == "" {
		return text
	}
	return rest
}
