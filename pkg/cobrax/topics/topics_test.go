package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"template.md":        {Data: []byte("# Template\n\nHow templates work")},
		"option-dry-run.txt": {Data: []byte("Nothing is written")},
		"nested/sections.md": {Data: []byte("# Sections")},
		"config.txxt":        {Data: []byte("Configuration Guide")},
		"ignore.json":        {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"option-dry-run", "sections", "template"}, tm.ListTopics())

		topic, ok := tm.GetTopic("template")
		require.True(t, ok)
		assert.Equal(t, "# Template\n\nHow templates work", topic.Content)
		assert.Equal(t, "template.md", topic.FilePath)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil_fs_has_no_topics", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"dry-run", "--dry-run", "-dry-run", "option-dry-run"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "Nothing is written", topic.Content)
	}
	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return format + ":" + strings.ToUpper(content)
}

func newRoot(t *testing.T, opts Options) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "labws", Short: "root", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "generate", Short: "Generate files", Run: func(*cobra.Command, []string) {}})

	_, err := InitializeWithOptions(root, testFS(), opts)
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		root, out := newRoot(t, Options{Renderer: upperRenderer{}})
		root.SetArgs([]string{"help", "template"})
		require.NoError(t, root.Execute())
		assert.Equal(t, ".md:# TEMPLATE\n\nHOW TEMPLATES WORK", out.String())
	})

	t.Run("list", func(t *testing.T) {
		root, out := newRoot(t, Options{})
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())

		s := out.String()
		assert.Contains(t, s, "General topics:\n  sections\n  template\n")
		assert.Contains(t, s, "Option topics:\n  --dry-run\n")
		assert.Contains(t, s, "Use 'labws help <topic>'")
	})

	t.Run("command_falls_through", func(t *testing.T) {
		root, out := newRoot(t, Options{})
		root.SetArgs([]string{"help", "generate"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Generate files")
	})

	t.Run("completion_lists_topics_and_commands", func(t *testing.T) {
		root, _ := newRoot(t, Options{})
		root.InitDefaultHelpCmd()
		help, _, err := root.Find([]string{"help"})
		require.NoError(t, err)

		got, directive := help.ValidArgsFunction(help, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Contains(t, got, "topics")
		assert.Contains(t, got, "generate")
		assert.Contains(t, got, "template")
	})
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "x", (&PlainRenderer{}).Render("x", ".md"))
}

func TestGlamourRendererSkipsNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain *text*", r.Render("plain *text*", ".txt"))
}

func TestGlamourRendererRendersMarkdown(t *testing.T) {
	r := &GlamourRenderer{NoColor: true, Width: 40}
	out := r.Render("# Title\n\nSome **bold** text", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}
