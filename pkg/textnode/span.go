// Package textnode locates the text-bearing nodes of a markup document and
// resolves each to its exact byte span in the original source.
//
// The parse tree is only used as an index into the source string. Nothing
// is ever serialized back from the tree; callers rewrite the spans in place.
package textnode

import (
	"context"
	"errors"
)

// ErrParse is returned when the document cannot be tokenized.
var ErrParse = errors.New("parse document")

// Span is one contiguous run of character data belonging to a single text
// node. Text always equals doc[Start:End] at the time the span is derived.
type Span struct {
	// Start is the byte offset where the span begins (inclusive).
	Start int

	// End is the byte offset where the span ends (exclusive).
	End int

	// Text is the source text covered by the span.
	Text string
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Miss records a text node whose content could not be found verbatim in
// the source, usually because of entity escaping.
type Miss struct {
	// Offset is the byte offset of the node's raw source region.
	Offset int

	// Text is the decoded node content.
	Text string
}

// previewRunes is how much of a missed node is shown in diagnostics.
const previewRunes = 20

// Preview returns a short prefix of the missed text for log output.
func (m Miss) Preview() string {
	runes := []rune(m.Text)
	if len(runes) <= previewRunes {
		return m.Text
	}
	return string(runes[:previewRunes]) + "..."
}

// Result is the outcome of locating text nodes in one document.
type Result struct {
	// Spans are the located text spans in document order.
	Spans []Span

	// Misses are the text nodes that were skipped.
	Misses []Miss

	// Excluded counts character-bearing nodes that are never eligible,
	// keyed by kind.
	Excluded map[Kind]int
}

// Locator finds text spans in a document.
type Locator interface {
	Locate(ctx context.Context, doc string) (*Result, error)
}

// Kind classifies a parsed node.
type Kind int

// Node kinds.
const (
	KindElement Kind = iota
	KindText
	KindComment
	KindLiteralData
	KindProcInst
	KindDirective
	KindCode
	KindRawMarkup
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindLiteralData:
		return "cdata"
	case KindProcInst:
		return "processing-instruction"
	case KindDirective:
		return "directive"
	case KindCode:
		return "code"
	case KindRawMarkup:
		return "raw-markup"
	default:
		return "unknown"
	}
}

// Eligible reports whether nodes of this kind may be rewritten.
func (k Kind) Eligible() bool {
	return k == KindText
}

func newResult() *Result {
	return &Result{
		Excluded: make(map[Kind]int),
	}
}
