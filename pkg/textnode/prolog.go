package textnode

import "strings"

const (
	byteOrderMark = "\ufeff"
	declOpen      = "<?xml"
	declClose     = "?>"
)

// SplitProlog separates a leading XML declaration from the rest of the
// document. The prolog is the optional byte order mark, the declaration
// itself, and the whitespace that follows it. Concatenating the two results
// always reproduces doc exactly.
//
// Processing instructions whose target merely starts with "xml" (such as
// xml-stylesheet) are not declarations and stay in the body.
func SplitProlog(doc string) (string, string) {
	pos := 0
	if strings.HasPrefix(doc, byteOrderMark) {
		pos = len(byteOrderMark)
	}

	rest := doc[pos:]
	if !isDeclaration(rest) {
		return doc[:pos], doc[pos:]
	}

	closeIdx := strings.Index(rest, declClose)
	if closeIdx < 0 {
		// Unterminated; leave it for the parser to reject.
		return doc[:pos], doc[pos:]
	}
	pos += closeIdx + len(declClose)

	for pos < len(doc) && isXMLSpace(doc[pos]) {
		pos++
	}

	return doc[:pos], doc[pos:]
}

func isDeclaration(s string) bool {
	if !strings.HasPrefix(s, declOpen) {
		return false
	}
	if len(s) == len(declOpen) {
		return false
	}
	next := s[len(declOpen)]
	return isXMLSpace(next) || next == '?'
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
