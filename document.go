package mdnum

// Change is a heading line rewritten by Number. Line is 1-based.
type Change struct {
	Line   int
	Before string
	After  string
}

// Result is the outcome of numbering one document.
type Result struct {
	// Output is the numbered document.
	Output []byte
	// Headings counts the headings that received a label.
	Headings int
	// Lines counts the input lines.
	Lines int
	// Changes lists heading lines whose text changed, in document order.
	Changes []Change
	// Skipped is set when front matter disabled numbering for the document.
	Skipped bool
	// Warnings collects non-fatal problems, such as unreadable front matter.
	Warnings []string

	spaced bool
}

// Changed reports whether Output differs from the input.
func (r Result) Changed() bool {
	return len(r.Changes) > 0 || r.spaced
}

// Number numbers the headings of a Markdown document. Lines inside leading
// front matter, code blocks and HTML blocks are never treated as headings.
// Front matter may carry an "mdnum" key whose settings override opts.
func Number(src []byte, opts ...Option) (Result, error) {
	if err := ValidateInput(src); err != nil {
		return Result{}, &InputError{Err: err}
	}
	bom, body := trimBOM(src)
	lines := splitLines(body)
	res := Result{Lines: len(lines)}

	fmLines := frontMatterLines(lines)
	if fmLines > 0 {
		end := len(body)
		if fmLines < len(lines) {
			end = lines[fmLines].offset
		}
		overrides, err := parseOverrides(body[:end])
		switch {
		case err != nil:
			res.Warnings = append(res.Warnings, err.Error())
		case overrides != nil && overrides.Skip:
			res.Output = src
			res.Skipped = true
			return res, nil
		case overrides != nil:
			opts = append(append([]Option(nil), opts...), overrides.Options()...)
		}
	}
	cfg := buildOptions(opts)

	literal := make([]bool, len(lines))
	if fmLines < len(lines) {
		base := lines[fmLines].offset
		starts := make([]int, 0, len(lines)-fmLines)
		for _, l := range lines[fmLines:] {
			starts = append(starts, l.offset-base)
		}
		copy(literal[fmLines:], literalLines(body[base:], starts))
	}

	n := newNumberer(cfg)
	headings := make([]bool, len(lines))
	for i := fmLines; i < len(lines); i++ {
		if literal[i] {
			continue
		}
		rewritten, ok := n.Rewrite(lines[i].text)
		if !ok {
			continue
		}
		headings[i] = true
		res.Headings++
		if rewritten != lines[i].text {
			res.Changes = append(res.Changes, Change{
				Line:   i + 1,
				Before: lines[i].text,
				After:  rewritten,
			})
			lines[i].text = rewritten
		}
	}

	if cfg.spaceHeaders {
		spaced := spaceHeadings(lines, headings)
		res.spaced = len(spaced) != len(lines)
		lines = spaced
	}
	res.Output = joinLines(bom, lines)
	return res, nil
}
