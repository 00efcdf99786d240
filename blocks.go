package mdnum

import (
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// literalLines reports, per line of src, whether the line belongs to a fenced
// code block, an indented code block or an HTML block, closing line included. starts holds the byte
// offset of each line in src.
func literalLines(src []byte, starts []int) []bool {
	mask := make([]bool, len(starts))
	if len(src) == 0 || len(starts) == 0 {
		return mask
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	mark := func(offset int) {
		i := sort.SearchInts(starts, offset+1) - 1
		if i >= 0 {
			mask[i] = true
		}
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				mark(segs.At(i).Start)
			}
			if hb, ok := n.(*ast.HTMLBlock); ok && hb.HasClosure() {
				mark(hb.ClosureLine.Start)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return mask
}
