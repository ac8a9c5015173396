package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/ditaspace/pkg/langdetect"
)

// Error sentinels.
var (
	// ErrNoInput is returned when Options.Input is empty.
	ErrNoInput = errors.New("no input path given")

	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input path does not exist")
)

// Discover returns the files a run covers, sorted by path.
//
// A file input is returned as is, whatever its extension. A directory
// input yields the files whose extension is recognized (compared
// case-insensitively), descending into subdirectories only when
// opts.Recursive is set. Version control metadata directories and ignored
// paths are skipped. A symlinked input directory is walked through its
// target; returned paths keep the input's own prefix.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	if opts.Input == "" {
		return nil, ErrNoInput
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := CompileIgnore(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	absPath := opts.Input
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workDir, absPath)
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.Input)
		}
		return nil, fmt.Errorf("stat %s: %w", opts.Input, err)
	}

	if !info.IsDir() {
		return []string{absPath}, nil
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", opts.Input, err)
	}

	w := walker{
		workDir:    workDir,
		root:       absPath,
		extensions: langdetect.Extensions(opts.Markdown),
		recursive:  opts.Recursive,
		ignore:     ignore,
	}
	files, err := w.walk(ctx, realPath)
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	workDir    string
	root       string
	extensions []string
	recursive  bool
	ignore     *Matcher
}

// walk visits realRoot and reports each file under w.root.
func (w walker) walk(ctx context.Context, realRoot string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(realRoot, func(realPath string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if realPath == realRoot {
			return nil
		}

		path := w.display(realRoot, realPath)
		relPath := w.rel(path)

		if entry.IsDir() {
			if !w.recursive || isVCSDir(entry.Name()) || w.ignore.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		// Directory symlinks are never followed; file symlinks are
		// treated as regular files.
		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(realPath)
			if statErr != nil || info.IsDir() {
				return nil //nolint:nilerr // Broken links and directory links are skipped.
			}
		}

		if hasExtension(path, w.extensions) && !w.ignore.Match(relPath, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", w.root, err)
	}

	return files, nil
}

func (w walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// display maps a path under realRoot to the same path under w.root.
func (w walker) display(realRoot, realPath string) string {
	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil {
		return realPath
	}
	return filepath.Join(w.root, rel)
}

// vcsDirs are version control metadata directories, never descended into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

func isVCSDir(name string) bool {
	return vcsDirs[name]
}

// hasExtension compares the extension of path case-insensitively.
func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
