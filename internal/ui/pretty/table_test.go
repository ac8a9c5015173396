package pretty_test

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ditaspace/internal/ui/pretty"
	"github.com/yaklabco/ditaspace/pkg/runner"
	"github.com/yaklabco/ditaspace/pkg/stylize"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "docs/概述.dita", Result: &stylize.Result{
			Encoding: "utf-8", Spans: 12, SpansChanged: 3, Modified: true, Written: true,
		}},
		{Path: "docs/plain.xml", Result: &stylize.Result{
			Encoding: "gbk", Spans: 4, Misses: make([]textnode.Miss, 1),
		}},
	}}
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := pretty.Rows(sampleResult())
	require.Len(t, rows, 2)

	assert.Equal(t, pretty.TableRow{
		File: "docs/概述.dita", Status: pretty.StatusSaved, Encoding: "utf-8", Spans: 12, Changed: 3,
	}, rows[0])
	assert.Equal(t, 1, rows[1].Missed)
	assert.Nil(t, pretty.Rows(nil))
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatTable(sampleResult())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "MISSED")
	assert.True(t, strings.HasPrefix(lines[1], "==="))
	assert.Contains(t, lines[2], "docs/概述.dita")
	assert.Contains(t, lines[2], "saved")
	assert.Contains(t, lines[3], "gbk")

	// Display widths line up even with wide characters in paths.
	statusCol := strings.Index(lines[3], "unchanged")
	require.Positive(t, statusCol)
	prefix := lines[2][:strings.Index(lines[2], "saved")]
	assert.Equal(t, runewidth.StringWidth(lines[3][:statusCol]), runewidth.StringWidth(prefix))
}

func TestFormatTable_TruncatesLongPaths(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("deep/", 30) + "topic.dita"
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: long, Result: &stylize.Result{Encoding: "utf-8"}},
	}}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 80).FormatTable(result)

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "topic.dita")
	assert.NotContains(t, out, long)
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatTable(&runner.Result{}))
}
