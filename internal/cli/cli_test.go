package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ditaspace/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// execute runs the root command with args and an empty explicit config so
// that no project config influences the run.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("color: never\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "ditaspace", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"init", "rules", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	shorthands := map[string]string{"input": "i", "encoding": "e", "recursive": "r"}
	for name, short := range shorthands {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, short, flag.Shorthand, name)
	}

	for _, name := range []string{"fallback-encoding", "log-level", "dry-run", "backup", "markdown", "ignore", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "utf-8", cmd.Flags().Lookup("encoding").DefValue)
	assert.Equal(t, "gbk", cmd.Flags().Lookup("fallback-encoding").DefValue)
	assert.Equal(t, "INFO", cmd.Flags().Lookup("log-level").DefValue)

	for _, name := range []string{"config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t)
	require.ErrorIs(t, err, cli.ErrMissingInput)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestRun_InputFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.xml")
	require.NoError(t, os.WriteFile(path, []byte("<p>中文abc</p>"), 0o644))
	t.Setenv("DITASPACE_INPUT", dir)

	_, _, err := execute(t)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>中文 abc</p>", string(got))
}

func TestRun_NonexistentInput(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "-i", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestRun_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "-i", t.TempDir(), "-e", "no-such-encoding")
	require.Error(t, err)
}

func TestRun_FixesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.dita"),
		[]byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<p>使用Go语言(简介)</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xml"), []byte("<p>plain</p>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.xml"), []byte("<p>中文abc</p>"), 0o644))

	stdout, stderr, err := execute(t, "-i", dir)
	require.NoError(t, err)
	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(err))

	got, err := os.ReadFile(filepath.Join(dir, "a.dita"))
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<p>使用 Go 语言 (简介)</p>", string(got))

	nested, err := os.ReadFile(filepath.Join(dir, "sub", "c.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<p>中文abc</p>", string(nested), "non-recursive run must not touch subdirectories")

	assert.Contains(t, stdout, "scanned 2, modified 1")
	assert.Contains(t, stderr, "found file")
	assert.Contains(t, stderr, "saved")
}

func TestRun_RecursiveDryRunJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "c.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("<p>中文abc</p>"), 0o644))

	stdout, _, err := execute(t, "-i", dir, "-r", "--dry-run", "--format", "json", "--log-level", "ERROR")
	require.NoError(t, err)

	var output struct {
		Files []struct {
			Status string `json:"status"`
			Diff   string `json:"diff"`
		} `json:"files"`
		Summary struct {
			FilesScanned  int `json:"filesScanned"`
			FilesModified int `json:"filesModified"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Files, 1)
	assert.Equal(t, "would change", output.Files[0].Status)
	assert.Contains(t, output.Files[0].Diff, "+<p>中文 abc</p>")
	assert.Equal(t, 1, output.Summary.FilesModified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>中文abc</p>", string(got))
}

func TestRun_PerFileErrorsDoNotFailTheRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xml"), []byte("<p>unclosed"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.xml"), []byte("<p>中文abc</p>"), 0o644))

	stdout, stderr, err := execute(t, "-i", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "1 error")
	assert.Contains(t, stderr, "failed to process file")
}

func TestRun_Backup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.xml")
	require.NoError(t, os.WriteFile(path, []byte("<p>中文abc</p>"), 0o644))

	_, _, err := execute(t, "-i", path, "--backup")
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".ditaspace.bak")
	require.NoError(t, err)
	assert.Equal(t, "<p>中文abc</p>", string(backup))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc123")
}

func TestRulesCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []struct {
		Name    string `json:"name"`
		Pattern string `json:"pattern"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, 3)
	assert.Equal(t, "han-before-alnum", rules[0].Name)

	_, _, err = execute(t, "rules", "--format", "xml")
	require.Error(t, err)
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "-i, --input string")
	assert.Contains(t, stdout, "(default utf-8)")
	assert.Contains(t, stdout, "Available Commands:")
}
