package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/runner"
	"github.com/yaklabco/ditaspace/pkg/stylize"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

func captureLogs(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.SetFormatter(log.LogfmtFormatter)
	return logging.WithLogger(context.Background(), logger), &buf
}

func newPipeline(t *testing.T, opts stylize.Options) *stylize.Pipeline {
	t.Helper()

	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}
	p, err := stylize.NewPipeline(nil, opts)
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunner_Batch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<p>中文abc</p>")
	writeFile(t, dir, "b.dita", "<p>已经 spaced 文本</p>")
	writeFile(t, dir, "c.XML", "<?xml version=\"1.0\"?>\n<p>版本2</p>")
	writeFile(t, dir, ".d.dita", "<p>隐藏文件x</p>")
	writeFile(t, dir, "skip.txt", "<p>中文abc</p>")

	ctx, logs := captureLogs(t)

	result, err := runner.New(newPipeline(t, stylize.Options{})).Run(ctx, runner.Options{
		Input: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.FilesScanned)
	assert.Equal(t, 3, result.Stats.FilesModified)
	assert.Equal(t, 3, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Equal(t, 0, result.Stats.FilesErrored)
	assert.Equal(t, 3, result.Stats.SpansChanged)
	assert.False(t, result.HasErrors())

	got, err := os.ReadFile(filepath.Join(dir, "c.XML"))
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\"?>\n<p>版本 2</p>", string(got))

	hidden, err := os.ReadFile(filepath.Join(dir, ".d.dita"))
	require.NoError(t, err)
	assert.Equal(t, "<p>隐藏文件 x</p>", string(hidden))

	untouched, err := os.ReadFile(filepath.Join(dir, "skip.txt"))
	require.NoError(t, err)
	assert.Equal(t, "<p>中文abc</p>", string(untouched))

	out := logs.String()
	assert.Contains(t, out, "found file")
	assert.Contains(t, out, "unchanged, skipping save")
	assert.Contains(t, out, "scanned 4, modified 3")
}

func TestRunner_ErrorIsolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<p>中文abc</p>")
	writeFile(t, dir, "b.xml", "<p>unclosed")
	writeFile(t, dir, "c.xml", "<p>abc中文</p>")

	ctx, logs := captureLogs(t)

	result, err := runner.New(newPipeline(t, stylize.Options{})).Run(ctx, runner.Options{Input: dir})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesScanned)
	assert.Equal(t, 2, result.Stats.FilesModified)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())

	errs := result.Errors()
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], stylize.ErrParse)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "b.xml"), result.Files[1].Path)
	assert.Nil(t, result.Files[1].Result)

	broken, err := os.ReadFile(filepath.Join(dir, "b.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<p>unclosed", string(broken))

	assert.Contains(t, logs.String(), "level=error")
}

func TestRunner_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.xml", "<p>中文abc</p>")

	ctx, logs := captureLogs(t)

	result, err := runner.New(newPipeline(t, stylize.Options{DryRun: true})).Run(ctx, runner.Options{Input: path})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	require.NotNil(t, result.Files[0].Result.Diff)
	assert.Contains(t, logs.String(), "changes pending")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>中文abc</p>", string(got))
}

func TestRunner_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "top.xml", "<p>中文abc</p>")
	writeFile(t, dir, "nested/inner.dita", "<p>中文abc</p>")
	writeFile(t, dir, ".topics/c.xml", "<p>中文abc</p>")
	writeFile(t, dir, ".git/objects.xml", "<p>中文abc</p>")

	flat, err := runner.New(newPipeline(t, stylize.Options{DryRun: true})).
		Run(context.Background(), runner.Options{Input: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, flat.Stats.FilesScanned)

	deep, err := runner.New(newPipeline(t, stylize.Options{DryRun: true})).
		Run(context.Background(), runner.Options{Input: dir, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, 3, deep.Stats.FilesScanned)
}

// stubProcessor returns canned results keyed by base name.
type stubProcessor struct {
	results map[string]*stylize.Result
	calls   []string
	cancel  context.CancelFunc
}

func (s *stubProcessor) ProcessFile(_ context.Context, path string) (*stylize.Result, error) {
	s.calls = append(s.calls, filepath.Base(path))
	if s.cancel != nil {
		s.cancel()
	}
	res, ok := s.results[filepath.Base(path)]
	if !ok {
		return nil, errors.New("no stub")
	}
	res.Path = path
	return res, nil
}

func TestRunner_StatsFromOutcomes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.xml", "b.xml", "c.xml", "d.xml"} {
		writeFile(t, dir, name, "<p/>")
	}

	stub := &stubProcessor{results: map[string]*stylize.Result{
		"a.xml": {Modified: true, Written: true, BackupCreated: true, SpansChanged: 3},
		"b.xml": {Modified: true, Skipped: true, SkipReason: "file modified during processing", SpansChanged: 1},
		"c.xml": {Misses: make([]textnode.Miss, 2)},
	}}

	result, err := runner.New(stub).Run(context.Background(), runner.Options{Input: dir})
	require.NoError(t, err)

	assert.Equal(t, runner.Stats{
		FilesScanned:   4,
		FilesModified:  2,
		FilesWritten:   1,
		FilesUnchanged: 1,
		FilesSkipped:   1,
		FilesErrored:   1,
		SpansChanged:   4,
		SpansMissed:    2,
		BackupsCreated: 1,
	}, result.Stats)
}

func TestRunner_CancelledBetweenFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<p/>")
	writeFile(t, dir, "b.xml", "<p/>")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &stubProcessor{
		results: map[string]*stylize.Result{"a.xml": {}, "b.xml": {}},
		cancel:  cancel,
	}

	result, err := runner.New(stub).Run(ctx, runner.Options{Input: dir})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, []string{"a.xml"}, stub.calls)
	assert.Equal(t, 1, result.Stats.FilesScanned)
}

func TestRunner_DiscoveryError(t *testing.T) {
	t.Parallel()

	_, err := runner.New(&stubProcessor{}).Run(context.Background(), runner.Options{
		Input: filepath.Join(t.TempDir(), "missing"),
	})
	require.ErrorIs(t, err, runner.ErrInputNotFound)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	assert.False(t, r.HasErrors())
	assert.Nil(t, r.Errors())
}
