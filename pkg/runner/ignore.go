package runner

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher tests slash-separated relative paths against ignore patterns.
// "*" stays within one path segment and "**" crosses segments.
type Matcher struct {
	globs []glob.Glob
}

// CompileIgnore compiles patterns into a Matcher.
func CompileIgnore(patterns []string) (*Matcher, error) {
	m := &Matcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether relPath, or its base name, matches any pattern.
// Directories also match patterns of the form "dir/**".
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if m == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range m.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
		if isDir && g.Match(relPath+"/") {
			return true
		}
	}
	return false
}
