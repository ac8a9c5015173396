// Package stylize applies CJK spacing to whole documents and files. The
// Engine works on decoded text; the Pipeline adds reading, decoding,
// change detection, backups and atomic writes around it.
package stylize

import (
	"context"
	"fmt"

	"github.com/yaklabco/ditaspace/pkg/fix"
	"github.com/yaklabco/ditaspace/pkg/langdetect"
	"github.com/yaklabco/ditaspace/pkg/parser/goldmark"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

// Outcome is the result of processing one document in memory.
type Outcome struct {
	// Text is the rewritten document, identical to the input if unmodified.
	Text string

	// Modified is true if any text span changed.
	Modified bool

	// Spans is the number of text spans located.
	Spans int

	// Edits are the changed spans, with offsets into the input document.
	Edits []fix.TextEdit

	// Misses are text nodes that were skipped, with offsets into the input.
	Misses []textnode.Miss

	// Excluded counts nodes never eligible for spacing, by kind.
	Excluded map[textnode.Kind]int
}

// Engine rewrites documents. It is safe for sequential reuse.
type Engine struct {
	xml      textnode.Locator
	markdown textnode.Locator
}

// NewEngine returns an Engine with the XML and Markdown locators.
func NewEngine() *Engine {
	return &Engine{
		xml:      textnode.NewXMLLocator(),
		markdown: goldmark.New(),
	}
}

// ProcessContent spaces every eligible text node of doc.
//
// For XML the leading declaration is split off first and re-attached
// verbatim, so it is always the unchanged start of the output. A malformed
// document fails with an error wrapping textnode.ErrParse.
func (e *Engine) ProcessContent(ctx context.Context, doc string, format langdetect.Format) (*Outcome, error) {
	var (
		prolog  string
		body    = doc
		locator textnode.Locator
	)

	switch format {
	case langdetect.FormatMarkdown:
		locator = e.markdown
	default:
		locator = e.xml
		prolog, body = textnode.SplitProlog(doc)
	}

	located, err := locator.Locate(ctx, body)
	if err != nil {
		return nil, err
	}

	rewritten, err := fix.RewriteSpans(body, located.Spans)
	if err != nil {
		return nil, fmt.Errorf("rewrite spans: %w", err)
	}

	shift := len(prolog)
	edits := make([]fix.TextEdit, len(rewritten.Edits))
	for i, edit := range rewritten.Edits {
		edit.StartOffset += shift
		edit.EndOffset += shift
		edits[i] = edit
	}
	misses := make([]textnode.Miss, len(located.Misses))
	for i, miss := range located.Misses {
		miss.Offset += shift
		misses[i] = miss
	}

	return &Outcome{
		Text:     prolog + rewritten.Text,
		Modified: rewritten.Modified,
		Spans:    len(located.Spans),
		Edits:    edits,
		Misses:   misses,
		Excluded: located.Excluded,
	}, nil
}
