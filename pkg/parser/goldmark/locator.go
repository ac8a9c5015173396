// Package goldmark locates prose text in Markdown topics using the goldmark
// parser. Every text node carries a segment into the source, so spans come
// straight from the AST without searching.
package goldmark

import (
	"context"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/ditaspace/pkg/textnode"
)

// Locator finds prose text spans in Markdown documents.
type Locator struct {
	md goldmark.Markdown
}

// New creates a Markdown locator with GitHub Flavored Markdown extensions,
// so tables and strikethrough are parsed and bare URLs become autolinks.
func New() *Locator {
	return &Locator{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

var _ textnode.Locator = (*Locator)(nil)

// Locate parses doc and returns the spans of every prose text node in
// document order. Code spans, code blocks, raw HTML and autolinks are
// excluded. Markdown has no syntax errors, so Locate only fails on
// cancellation.
func (l *Locator) Locate(ctx context.Context, doc string) (*textnode.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("locate cancelled: %w", err)
	}

	source := []byte(doc)
	root := l.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	result := &textnode.Result{Excluded: make(map[textnode.Kind]int)}

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.CodeSpan, *ast.FencedCodeBlock, *ast.CodeBlock:
			result.Excluded[textnode.KindCode]++
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock, *ast.AutoLink:
			result.Excluded[textnode.KindRawMarkup]++
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			seg := n.Segment
			if seg.Len() == 0 {
				return ast.WalkContinue, nil
			}
			result.Spans = append(result.Spans, textnode.Span{
				Start: seg.Start,
				End:   seg.Stop,
				Text:  doc[seg.Start:seg.Stop],
			})
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	sort.SliceStable(result.Spans, func(i, j int) bool {
		return result.Spans[i].Start < result.Spans[j].Start
	})

	return result, nil
}
