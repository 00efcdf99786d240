package mdnum

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const previewIndent = "    -> "

// PreviewStyle styles the parts of a preview listing.
type PreviewStyle struct {
	Title  lipgloss.Style
	Line   lipgloss.Style
	Before lipgloss.Style
	After  lipgloss.Style
}

// DefaultPreviewStyle returns colored styles for terminal output.
func DefaultPreviewStyle() PreviewStyle {
	return PreviewStyle{
		Title:  lipgloss.NewStyle().Bold(true),
		Line:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Before: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		After:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// PlainPreviewStyle returns styles that emit no escape sequences.
func PlainPreviewStyle() PreviewStyle {
	return PreviewStyle{
		Title:  lipgloss.NewStyle(),
		Line:   lipgloss.NewStyle(),
		Before: lipgloss.NewStyle(),
		After:  lipgloss.NewStyle(),
	}
}

// PreviewRequest configures WritePreview.
type PreviewRequest struct {
	Writer io.Writer
	Name   string
	Result Result
	// Width truncates listed lines to this many columns. 0 disables it.
	Width int
	Style PreviewStyle
}

// WritePreview lists the heading changes of a numbering run:
//
//	Line 3: ## Scope
//	    -> ## 1.1 Scope
func WritePreview(req PreviewRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("preview: Writer is nil")
	}
	w := req.Writer
	st := req.Style
	if req.Name != "" {
		title := fmt.Sprintf("%s: %d of %d headings change", req.Name, len(req.Result.Changes), req.Result.Headings)
		if _, err := fmt.Fprintln(w, st.Title.Render(title)); err != nil {
			return err
		}
	}
	for _, c := range req.Result.Changes {
		label := fmt.Sprintf("Line %d: ", c.Line)
		before := fitWidth(c.Before, req.Width-len(label))
		after := fitWidth(c.After, req.Width-len(previewIndent))
		if _, err := fmt.Fprintf(w, "%s%s\n%s%s\n\n",
			st.Line.Render(label), st.Before.Render(before),
			st.Line.Render(previewIndent), st.After.Render(after)); err != nil {
			return err
		}
	}
	return nil
}

// fitWidth truncates text to limit columns with a trailing ellipsis. A limit
// of 0 or less leaves text untouched.
func fitWidth(text string, limit int) string {
	if limit <= 0 || ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit == 1 {
		return "…"
	}
	return truncate.StringWithTail(text, uint(limit), "…")
}
