package fix_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/ditaspace/pkg/fix"
	"github.com/yaklabco/ditaspace/pkg/spacing"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

func FuzzRewriteSpans(f *testing.F) {
	seeds := []string{
		"<p>中文abc</p>",
		"<a><b>数据123</b>尾巴x</a>",
		"<p>AT&amp;T中文</p>",
		"<r><!--注释x--><p>正文(a)</p></r>",
		"<p>\r\n中文x\r\n</p>",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, doc string) {
		located, err := textnode.NewXMLLocator().Locate(context.Background(), doc)
		if err != nil {
			return
		}

		result, err := fix.RewriteSpans(doc, located.Spans)
		if err != nil {
			t.Fatalf("RewriteSpans() error = %v", err)
		}

		if !result.Modified && result.Text != doc {
			t.Fatal("unmodified rewrite changed the document")
		}
		if strings.ReplaceAll(result.Text, " ", "") != strings.ReplaceAll(doc, " ", "") {
			t.Fatal("rewrite changed more than spaces")
		}

		for _, e := range result.Edits {
			if s, _ := spacing.Add(e.NewText); s != e.NewText {
				t.Fatalf("rewrite not idempotent for %q", e.NewText)
			}
		}
	})
}

func FuzzApplyEdits(f *testing.F) {
	f.Add("hello world", 0, 5, "bye")
	f.Add("中文abc", 6, 6, " ")
	f.Add("", 0, 0, "x")

	f.Fuzz(func(t *testing.T, content string, start, end int, text string) {
		edits, err := fix.PrepareEdits([]fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: text}}, len(content))
		if err != nil {
			return
		}

		got := fix.ApplyEdits(content, edits)
		want := content[:start] + text + content[end:]
		if got != want {
			t.Fatalf("ApplyEdits() = %q, want %q", got, want)
		}
	})
}
