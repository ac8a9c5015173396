// Package runner drives the stylizer over a file or a directory tree.
package runner

// Options controls which files a run covers.
type Options struct {
	// Input is the file or directory to process. A relative path is
	// resolved against WorkingDir.
	Input string

	// WorkingDir is the base for relative paths and ignore patterns.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Recursive descends into subdirectories of a directory input.
	Recursive bool

	// Markdown adds .md and .markdown to the recognized extensions.
	Markdown bool

	// ExcludeGlobs are ignore patterns matched against paths relative to
	// WorkingDir and against base names.
	ExcludeGlobs []string
}
