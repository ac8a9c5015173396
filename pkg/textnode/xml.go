package textnode

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const cdataOpen = "<![CDATA["

// XMLLocator finds text nodes in XML and DITA documents.
//
// Any leading XML declaration should be removed with SplitProlog first; an
// encoding declaration left in the body is tolerated because the input is
// already decoded.
type XMLLocator struct{}

// NewXMLLocator returns an XMLLocator.
func NewXMLLocator() *XMLLocator {
	return &XMLLocator{}
}

var _ Locator = (*XMLLocator)(nil)

// Locate tokenizes doc and returns the spans of every eligible text node in
// document order. Comments, CDATA sections, processing instructions and
// directives are excluded. Malformed markup fails the whole call.
//
// Each node is located by searching forward from the end of the previous
// span for the node's literal text, bounded by the node's raw source region.
// A node whose text is not found there (entity escaping) is recorded as a
// Miss and the cursor stays put.
func (l *XMLLocator) Locate(ctx context.Context, doc string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("locate cancelled: %w", err)
	}

	result := newResult()

	dec := xml.NewDecoder(strings.NewReader(doc))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = passthroughCharset

	cursor := 0
	for {
		rawStart := int(dec.InputOffset())

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		rawEnd := int(dec.InputOffset())
		raw := doc[rawStart:rawEnd]

		kind := classify(tok, raw)
		if !kind.Eligible() {
			if kind != KindElement {
				result.Excluded[kind]++
			}
			continue
		}

		text := string(tok.(xml.CharData))
		span, ok := locateSpan(doc, text, max(cursor, rawStart), rawEnd)
		if !ok {
			result.Misses = append(result.Misses, Miss{Offset: rawStart, Text: text})
			continue
		}

		result.Spans = append(result.Spans, span)
		cursor = span.End
	}

	return result, nil
}

// locateSpan finds text within doc[from:limit].
func locateSpan(doc, text string, from, limit int) (Span, bool) {
	if from > limit {
		return Span{}, false
	}
	window := doc[from:limit]

	if idx := strings.Index(window, text); idx >= 0 {
		start := from + idx
		return Span{Start: start, End: start + len(text), Text: text}, true
	}

	// The tokenizer folds CRLF and lone CR into LF. Such a node is still a
	// verbatim copy of its source region, so the raw slice is the span.
	if strings.ContainsRune(window, '\r') && normalizeNewlines(window) == text {
		return Span{Start: from, End: limit, Text: window}, true
	}

	return Span{}, false
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func classify(tok xml.Token, raw string) Kind {
	switch tok.(type) {
	case xml.CharData:
		if strings.HasPrefix(raw, cdataOpen) {
			return KindLiteralData
		}
		return KindText
	case xml.Comment:
		return KindComment
	case xml.ProcInst:
		return KindProcInst
	case xml.Directive:
		return KindDirective
	default:
		return KindElement
	}
}

// passthroughCharset accepts any declared encoding; the document has already
// been decoded to UTF-8 by the time it reaches the tokenizer.
func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}
