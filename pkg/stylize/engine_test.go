package stylize_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ditaspace/pkg/langdetect"
	"github.com/yaklabco/ditaspace/pkg/stylize"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

func process(t *testing.T, doc string, format langdetect.Format) *stylize.Outcome {
	t.Helper()

	outcome, err := stylize.NewEngine().ProcessContent(context.Background(), doc, format)
	require.NoError(t, err)
	return outcome
}

func TestEngine_ProcessContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		doc          string
		want         string
		wantModified bool
	}{
		{
			name:         "han then latin",
			doc:          "<p>中文abc</p>",
			want:         "<p>中文 abc</p>",
			wantModified: true,
		},
		{
			name:         "latin then han",
			doc:          "<p>abc中文</p>",
			want:         "<p>abc 中文</p>",
			wantModified: true,
		},
		{
			name:         "han then paren",
			doc:          "<p>中文(test)</p>",
			want:         "<p>中文 (test)</p>",
			wantModified: true,
		},
		{
			name: "pure chinese",
			doc:  "<p>纯中文文本</p>",
			want: "<p>纯中文文本</p>",
		},
		{
			name: "pure english",
			doc:  "<p>plain english text</p>",
			want: "<p>plain english text</p>",
		},
		{
			name:         "comment and cdata untouched",
			doc:          "<r><!-- 注释abc --><![CDATA[代码x]]><p>正文y</p></r>",
			want:         "<r><!-- 注释abc --><![CDATA[代码x]]><p>正文 y</p></r>",
			wantModified: true,
		},
		{
			name:         "processing instruction untouched",
			doc:          "<r><?dita-ot 配置abc?><p>段落1</p></r>",
			want:         "<r><?dita-ot 配置abc?><p>段落 1</p></r>",
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := process(t, tt.doc, langdetect.FormatXML)
			assert.Equal(t, tt.want, outcome.Text)
			assert.Equal(t, tt.wantModified, outcome.Modified)
		})
	}
}

func TestEngine_DeclarationPreserved(t *testing.T) {
	t.Parallel()

	decls := []string{
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n",
		"<?xml version='1.0' encoding='GBK' standalone='no' ?>\r\n\r\n",
		"\ufeff<?xml version=\"1.0\"?>",
	}
	body := "<!DOCTYPE topic PUBLIC \"-//OASIS//DTD DITA Topic//EN\" \"topic.dtd\">\n<topic id=\"a\"><title>标题abc</title></topic>\n"

	for _, decl := range decls {
		outcome := process(t, decl+body, langdetect.FormatXML)
		assert.True(t, strings.HasPrefix(outcome.Text, decl), "declaration %q not preserved in %q", decl, outcome.Text)
		assert.Contains(t, outcome.Text, "<title>标题 abc</title>")
	}
}

func TestEngine_OffsetsIncludeProlog(t *testing.T) {
	t.Parallel()

	doc := "<?xml version=\"1.0\"?>\n<r><p>AT&amp;T中文</p><p>中文abc</p></r>"

	outcome := process(t, doc, langdetect.FormatXML)

	require.Len(t, outcome.Edits, 1)
	edit := outcome.Edits[0]
	assert.Equal(t, "中文abc", doc[edit.StartOffset:edit.EndOffset])

	require.Len(t, outcome.Misses, 1)
	assert.True(t, strings.HasPrefix(doc[outcome.Misses[0].Offset:], "AT&amp;T"))
}

func TestEngine_OnlySpacesInserted(t *testing.T) {
	t.Parallel()

	doc := "<?xml version=\"1.0\"?>\n<topic>\n  <title>版本2.0发布</title>\n  <body><p attr=\"中a\">使用API接口(v2)</p></body>\n</topic>\n"

	outcome := process(t, doc, langdetect.FormatXML)

	assert.Equal(t, strings.ReplaceAll(doc, " ", ""), strings.ReplaceAll(outcome.Text, " ", ""))
	assert.Contains(t, outcome.Text, `attr="中a"`)
	assert.Contains(t, outcome.Text, "版本 2.0 发布")
	assert.Contains(t, outcome.Text, "使用 API 接口 (v2)")
}

func TestEngine_Markdown(t *testing.T) {
	t.Parallel()

	doc := "# 标题abc\n\n运行`命令x`即可2次\n"

	outcome := process(t, doc, langdetect.FormatMarkdown)
	assert.Equal(t, "# 标题 abc\n\n运行`命令x`即可 2 次\n", outcome.Text)
	assert.Equal(t, 1, outcome.Excluded[textnode.KindCode])
}

func TestEngine_ParseError(t *testing.T) {
	t.Parallel()

	_, err := stylize.NewEngine().ProcessContent(context.Background(), "<p>中文abc", langdetect.FormatXML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textnode.ErrParse))
}

func TestEngine_Idempotent(t *testing.T) {
	t.Parallel()

	doc := "<r><p>中文abc和123数字</p><p>括号中文（全角）</p></r>"

	first := process(t, doc, langdetect.FormatXML)
	second := process(t, first.Text, langdetect.FormatXML)

	assert.True(t, first.Modified)
	assert.False(t, second.Modified)
	assert.Equal(t, first.Text, second.Text)
}
