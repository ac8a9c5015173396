package config

import (
	"bytes"
	"fmt"
	"strings"
)

// templateField is one documented entry of the generated config file.
type templateField struct {
	comment string
	line    string
}

// GenerateTemplate returns a commented configuration file holding the
// defaults. Every value is written uncommented so the file loads as is.
func GenerateTemplate() []byte {
	defaults := NewConfig()

	fields := []templateField{
		{
			comment: "Primary encoding for reading and writing files.",
			line:    "encoding: " + defaults.Encoding,
		},
		{
			comment: "Tried once when a file does not decode with the primary encoding.\nSet to the same value as encoding to disable.",
			line:    "fallback_encoding: " + defaults.FallbackEncoding,
		},
		{
			comment: "Descend into subdirectories when the input is a directory.",
			line:    fmt.Sprintf("recursive: %t", defaults.Recursive),
		},
		{
			comment: "One of DEBUG, INFO, WARNING, ERROR.",
			line:    "log_level: " + defaults.LogLevel,
		},
		{
			comment: "Also process Markdown topics (.md, .markdown).",
			line:    fmt.Sprintf("markdown: %t", defaults.Markdown),
		},
		{
			comment: "Glob patterns for files to skip, matched against the path and the base name.",
			line:    "ignore: []",
		},
		{
			comment: "Copy each file to <file>.ditaspace.bak before overwriting it.",
			line: fmt.Sprintf("backups:\n  enabled: %t\n  mode: %s",
				defaults.Backups.Enabled, defaults.Backups.Mode),
		},
		{
			comment: "Report format: text, json, diff or table.",
			line:    "format: " + string(defaults.Format),
		},
		{
			comment: "Colored output: auto, always or never.",
			line:    "color: " + string(defaults.Color),
		},
		{
			comment: "Detect concurrent edits by time and size only, without re-hashing.",
			line:    fmt.Sprintf("quick_modified_check: %t", defaults.QuickModifiedCheck),
		},
	}

	var buf bytes.Buffer
	buf.WriteString("# ditaspace configuration\n")
	buf.WriteString("# Precedence: defaults < system < user < this file < --config < DITASPACE_* < flags\n")

	for _, f := range fields {
		buf.WriteByte('\n')
		for _, c := range strings.Split(f.comment, "\n") {
			buf.WriteString("# " + c + "\n")
		}
		buf.WriteString(f.line + "\n")
	}

	return buf.Bytes()
}
