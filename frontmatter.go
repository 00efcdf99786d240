package mdnum

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Overrides are per-document settings read from the "mdnum" key of a
// document's front matter. Unset fields keep the caller's options.
type Overrides struct {
	MaxLevel      *int  `yaml:"max_level" toml:"max_level" json:"max_level"`
	StripExisting *bool `yaml:"strip_existing" toml:"strip_existing" json:"strip_existing"`
	SpaceHeaders  *bool `yaml:"space_headers" toml:"space_headers" json:"space_headers"`
	Skip          bool  `yaml:"skip" toml:"skip" json:"skip"`
}

type frontMatterEnvelope struct {
	Mdnum *Overrides `yaml:"mdnum" toml:"mdnum" json:"mdnum"`
}

// Options converts the overrides into numbering options.
func (o *Overrides) Options() []Option {
	if o == nil {
		return nil
	}
	var opts []Option
	if o.MaxLevel != nil {
		opts = append(opts, WithMaxLevel(*o.MaxLevel))
	}
	if o.StripExisting != nil {
		opts = append(opts, WithStripExisting(*o.StripExisting))
	}
	if o.SpaceHeaders != nil {
		opts = append(opts, WithHeaderSpacing(*o.SpaceHeaders))
	}
	return opts
}

func (o *Overrides) validate() error {
	if o == nil || o.MaxLevel == nil {
		return nil
	}
	if *o.MaxLevel < 1 || *o.MaxLevel > MaxHeadingLevel {
		return fmt.Errorf("mdnum.max_level %d out of range 1..%d", *o.MaxLevel, MaxHeadingLevel)
	}
	return nil
}

// parseOverrides decodes the front matter block. A block without an "mdnum"
// key yields nil.
func parseOverrides(block []byte) (*Overrides, error) {
	var env frontMatterEnvelope
	if _, err := frontmatter.Parse(bytes.NewReader(block), &env); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if err := env.Mdnum.validate(); err != nil {
		return nil, err
	}
	return env.Mdnum, nil
}

// frontMatterLines returns how many leading lines form a front matter block,
// delimiters included, or 0 when the document has none. The block must open
// on the first line, carry metadata on its first non-comment line and be
// closed.
func frontMatterLines(lines []line) int {
	if len(lines) < 3 {
		return 0
	}
	delim, ok := openingFrontMatterDelimiter(lines[0].text)
	if !ok {
		return 0
	}
	first := 1
	for first < len(lines) && isFrontMatterComment(lines[first].text) {
		first++
	}
	if first == len(lines) || !frontMatterMetadataLikely(lines[first].text) {
		return 0
	}
	for i := first + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i].text) == delim {
			return i + 1
		}
	}
	return 0
}

func openingFrontMatterDelimiter(text string) (string, bool) {
	switch trimmed := strings.TrimSpace(text); trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	default:
		return "", false
	}
}

// YAML and TOML comments.
func isFrontMatterComment(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "#")
}

func frontMatterMetadataLikely(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}
