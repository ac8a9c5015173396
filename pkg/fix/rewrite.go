package fix

import (
	"fmt"

	"github.com/yaklabco/ditaspace/pkg/spacing"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

// Rewrite is the outcome of rewriting one document.
type Rewrite struct {
	// Text is the rewritten document.
	Text string

	// Modified is true if at least one span changed.
	Modified bool

	// Edits are the applied span replacements, sorted by offset.
	Edits []TextEdit
}

// SpanMismatchError reports a span whose text no longer matches the document.
type SpanMismatchError struct {
	Span textnode.Span
}

func (e *SpanMismatchError) Error() string {
	return fmt.Sprintf("span [%d:%d] does not match document text", e.Span.Start, e.Span.End)
}

// RewriteSpans applies the spacing rules to every span of doc and splices the
// changed spans back into it. Bytes outside the spans are never touched.
//
// Spans are visited from the highest offset down, and their offsets always
// refer to doc as given.
func RewriteSpans(doc string, spans []textnode.Span) (*Rewrite, error) {
	builder := NewEditBuilder()

	for i := len(spans) - 1; i >= 0; i-- {
		span := spans[i]
		if span.Start < 0 || span.End > len(doc) || span.Start > span.End ||
			doc[span.Start:span.End] != span.Text {
			return nil, &SpanMismatchError{Span: span}
		}

		spaced, changed := spacing.Add(span.Text)
		if !changed {
			continue
		}
		builder.ReplaceRange(span.Start, span.End, spaced)
	}

	if builder.Len() == 0 {
		return &Rewrite{Text: doc}, nil
	}

	edits, err := PrepareEdits(builder.Edits, len(doc))
	if err != nil {
		return nil, fmt.Errorf("prepare edits: %w", err)
	}

	return &Rewrite{
		Text:     ApplyEdits(doc, edits),
		Modified: true,
		Edits:    edits,
	}, nil
}
