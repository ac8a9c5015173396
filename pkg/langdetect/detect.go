// Package langdetect classifies input files by format. Extensions decide
// which files are processed; go-enry supplies binary sniffing and the
// language name used in debug output.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Format is a document format the tool knows how to process.
type Format int

// Supported formats.
const (
	FormatUnsupported Format = iota
	FormatXML
	FormatMarkdown
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unsupported"
	}
}

// xmlExtensions are always recognized.
//
//nolint:gochecknoglobals // Read-only lookup table.
var xmlExtensions = map[string]bool{
	".xml":  true,
	".dita": true,
}

// markdownExtensions are recognized only when Markdown support is enabled.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// FormatOf returns the format for path based on its extension, compared
// case-insensitively.
func FormatOf(path string, markdown bool) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case xmlExtensions[ext]:
		return FormatXML
	case markdown && markdownExtensions[ext]:
		return FormatMarkdown
	default:
		return FormatUnsupported
	}
}

// Extensions returns the recognized extensions, lowercase with leading dot.
func Extensions(markdown bool) []string {
	exts := []string{".dita", ".xml"}
	if markdown {
		exts = append(exts, ".markdown", ".md")
	}
	return exts
}

// IsBinary reports whether content looks like binary data rather than text.
// Only the leading bytes are inspected.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// Language returns the linguist language name for a file, such as "XML"
// or "Markdown". Returns "Text" if detection fails.
func Language(path string, content []byte) string {
	if lang := enry.GetLanguage(filepath.Base(path), content); lang != "" {
		return lang
	}
	return "Text"
}
