// Package spacing inserts a single space between Han ideographs and adjacent
// Latin letters, digits, and opening parentheses.
package spacing

import "regexp"

// Han ideographs covered by the rules. The range is the CJK Unified
// Ideographs block up to U+9FA5, the set of common Chinese characters.
const (
	hanFirst = '一'
	hanLast  = '龥'
)

// Rule is a single adjacency rule. Every match of Pattern has exactly two
// capture groups and is rewritten to "group1 group2".
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Pattern matches one adjacent character pair.
	Pattern *regexp.Regexp
}

// rules are applied in order; each pass sees the output of the previous one.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var rules = []Rule{
	{
		Name:    "han-before-alnum",
		Pattern: regexp.MustCompile(`([\x{4e00}-\x{9fa5}])([a-zA-Z0-9])`),
	},
	{
		Name:    "alnum-before-han",
		Pattern: regexp.MustCompile(`([a-zA-Z0-9])([\x{4e00}-\x{9fa5}])`),
	},
	{
		Name:    "han-before-paren",
		Pattern: regexp.MustCompile(`([\x{4e00}-\x{9fa5}])([(（])`),
	},
}

const replacement = "${1} ${2}"

// Rules returns the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Add applies all rules to text and reports whether the result differs
// from the input. It is total over any string and idempotent.
func Add(text string) (string, bool) {
	if !containsHan(text) {
		return text, false
	}

	out := text
	for _, rule := range rules {
		out = rule.Pattern.ReplaceAllString(out, replacement)
	}

	return out, out != text
}

// IsHan reports whether r is in the ideograph range the rules act on.
func IsHan(r rune) bool {
	return r >= hanFirst && r <= hanLast
}

// containsHan is a fast path: no rule can match without an ideograph.
func containsHan(text string) bool {
	for _, r := range text {
		if IsHan(r) {
			return true
		}
	}
	return false
}
