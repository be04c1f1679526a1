package style

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)
}

func TestMarkupRender(t *testing.T) {
	plain(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "nothing here", "nothing here"},
		{"single", "wrote [path]a.h[/path]", "wrote a.h"},
		{"several", "[lab]lab1[/lab] and [lab]lab2[/lab]", "lab1 and lab2"},
		{"nested", "[bold]x [path]y[/path][/bold]", "x y"},
		{"unknown_tag", "[nope]x[/nope]", "[nope]x[/nope]"},
		{"unclosed", "[path]x", "[path]x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in))
		})
	}
}

func TestMarkupAddStyle(t *testing.T) {
	plain(t)
	p := NewMarkupParser()
	p.AddStyle("x.y", lipgloss.NewStyle())
	assert.Equal(t, "v", p.Render("[x.y]v[/x.y]"), "tag names are quoted in the pattern")
}

func TestStatusLine(t *testing.T) {
	plain(t)

	line := StatusLine(StatusChanged, "workspace", "lzuoslab.code-workspace")
	assert.True(t, strings.HasPrefix(line, "  changed "))
	assert.Contains(t, line, "workspace")
	assert.True(t, strings.HasSuffix(line, "lzuoslab.code-workspace"))

	for _, s := range []Status{StatusWritten, StatusUnchanged, StatusChanged, StatusMissing, StatusPlanned} {
		assert.NotNil(t, StatusStyle(s))
	}
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.False(t, ColorEnabled(f), "regular files are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))
}

func TestIndent(t *testing.T) {
	plain(t)
	assert.Equal(t, "    x", Indent("x", 2))
}
