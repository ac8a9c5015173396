package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ditaspace/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for identical content", func(t *testing.T) {
		t.Parallel()

		diff, err := fix.GenerateDiff("a.xml", "<p>x</p>\n", "<p>x</p>\n")
		require.NoError(t, err)
		assert.Nil(t, diff)
		assert.False(t, diff.HasChanges())
		assert.Empty(t, diff.String())
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		original := "<topic>\n<p>中文abc</p>\n</topic>\n"
		modified := "<topic>\n<p>中文 abc</p>\n</topic>\n"

		diff, err := fix.GenerateDiff("docs/a.xml", original, modified)
		require.NoError(t, err)
		require.NotNil(t, diff)

		assert.True(t, diff.HasChanges())
		assert.Equal(t, 1, diff.Additions)
		assert.Equal(t, 1, diff.Deletions)
		assert.Contains(t, diff.String(), "--- a/docs/a.xml")
		assert.Contains(t, diff.String(), "+++ b/docs/a.xml")
		assert.Contains(t, diff.String(), "-<p>中文abc</p>")
		assert.Contains(t, diff.String(), "+<p>中文 abc</p>")
	})

	t.Run("git header strips leading slash", func(t *testing.T) {
		t.Parallel()

		diff, err := fix.GenerateDiff("/tmp/a.dita", "a\n", "b\n")
		require.NoError(t, err)
		assert.Equal(t, "diff --git a/tmp/a.dita b/tmp/a.dita", diff.GitHeader())
		assert.True(t, strings.HasPrefix(diff.FullString(), diff.GitHeader()+"\n"))
	})

	t.Run("several hunks", func(t *testing.T) {
		t.Parallel()

		lines := make([]string, 30)
		for i := range lines {
			lines[i] = "line"
		}
		original := strings.Join(lines, "\n") + "\n"
		lines[2] = "changed"
		lines[25] = "changed"
		modified := strings.Join(lines, "\n") + "\n"

		diff, err := fix.GenerateDiff("a.xml", original, modified)
		require.NoError(t, err)
		assert.Equal(t, 2, diff.Additions)
		assert.Equal(t, 2, diff.Deletions)
		assert.Equal(t, 2, strings.Count(diff.String(), "@@ -"))
	})

	t.Run("content lines that look like file headers are counted", func(t *testing.T) {
		t.Parallel()

		original := "--x\n<p>中文abc</p>\n"
		modified := "++y\n<p>中文 abc</p>\n"

		diff, err := fix.GenerateDiff("a.xml", original, modified)
		require.NoError(t, err)
		assert.Contains(t, diff.String(), "\n---x\n")
		assert.Contains(t, diff.String(), "\n+++y\n")
		assert.Equal(t, 2, diff.Additions)
		assert.Equal(t, 2, diff.Deletions)
	})
}
