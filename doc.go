// Package mdnum numbers Markdown headings.
//
// Every ATX heading ("#" through "######" followed by whitespace and text) is
// rewritten with a dotted label built from a per-level counter vector, so
// "# Intro" becomes "# 1 Intro" and a following "## Scope" becomes
// "## 1.1 Scope". All other lines pass through byte for byte.
//
// Core properties:
//   - One pass over the lines, one counter per heading depth
//   - Line endings and non-heading lines are preserved
//   - Front matter, code blocks and HTML blocks are never numbered
//   - Renumbering an already numbered document is a no-op
//
// Example:
//
//	res, err := mdnum.Number(src, mdnum.WithMaxLevel(3))
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.Stdout.Write(res.Output)
//
// NumberFile wraps the same transform with file I/O and atomic in-place
// writes.
package mdnum
