package mdnum

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestWritePreviewListsChanges(t *testing.T) {
	t.Parallel()
	res := numberString(t, "# Title\ntext\n## 1.1 Done\n## Scope\n")
	var out bytes.Buffer
	err := WritePreview(PreviewRequest{
		Writer: &out,
		Name:   "doc.md",
		Result: res,
		Style:  PlainPreviewStyle(),
	})
	if err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	want := "doc.md: 2 of 3 headings change\n" +
		"Line 1: # Title\n    -> # 1 Title\n\n" +
		"Line 4: ## Scope\n    -> ## 1.2 Scope\n\n"
	if out.String() != want {
		t.Fatalf("preview=%q want %q", out.String(), want)
	}
}

func TestWritePreviewTruncatesToWidth(t *testing.T) {
	t.Parallel()
	long := "# " + strings.Repeat("word ", 30)
	res := numberString(t, long+"\n")
	var out bytes.Buffer
	if err := WritePreview(PreviewRequest{Writer: &out, Result: res, Width: 40, Style: PlainPreviewStyle()}); err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 40 {
			t.Fatalf("line wider than 40 columns (%d): %q", w, line)
		}
	}
	if !strings.Contains(out.String(), "…") {
		t.Fatalf("expected ellipsis in truncated preview: %q", out.String())
	}
}

func TestWritePreviewRequiresWriter(t *testing.T) {
	t.Parallel()
	if err := WritePreview(PreviewRequest{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestFitWidth(t *testing.T) {
	t.Parallel()
	if got := fitWidth("short", 10); got != "short" {
		t.Fatalf("fitWidth short=%q", got)
	}
	if got := fitWidth("anything", 0); got != "anything" {
		t.Fatalf("fitWidth unlimited=%q", got)
	}
	if got := fitWidth("abcdef", 1); got != "…" {
		t.Fatalf("fitWidth 1=%q", got)
	}
	if got := fitWidth("abcdef", 4); ansi.PrintableRuneWidth(got) > 4 || !strings.HasSuffix(got, "…") {
		t.Fatalf("fitWidth 4=%q", got)
	}
}
