package screens

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilo-tui/internal/config"
	"kilo-tui/internal/editor"
	"kilo-tui/internal/fs"
	"kilo-tui/internal/syntax"
	"kilo-tui/internal/ui/styles"
)

func newTestScreen(t *testing.T, content string) (*EditorScreen, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.c")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := config.DefaultConfig()
	ed := editor.New(fs.Disk{}, syntax.DefaultRegistry(), editor.DefaultOptions(), nil)
	require.NoError(t, ed.Open(path))

	es := NewEditorScreen(cfg, styles.NewTheme(cfg.Theme), ed, nil)
	es.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return es, path
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []editor.Key
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []editor.Key{{Kind: editor.KeyEnter}}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []editor.Key{{Kind: editor.KeyTab}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []editor.Key{{Kind: editor.KeyEscape}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []editor.Key{{Kind: editor.KeyBackspace}}},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, []editor.Key{{Kind: editor.KeyDelete}}},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, []editor.Key{{Kind: editor.KeyPageDown}}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, []editor.Key{{Kind: editor.KeyHome}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []editor.Key{editor.Rune(' ')}},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, []editor.Key{editor.Rune('x')}},
		{"ctrl+h", tea.KeyMsg{Type: tea.KeyCtrlH}, []editor.Key{editor.Ctrl('h')}},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, []editor.Key{editor.Ctrl('s')}},
		{
			"paste",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\tb\nc"), Paste: true},
			[]editor.Key{
				editor.Rune('a'),
				{Kind: editor.KeyTab},
				editor.Rune('b'),
				{Kind: editor.KeyEnter},
				editor.Rune('c'),
			},
		},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, nil},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateKey(tt.msg))
		})
	}
}

func TestEditorScreen_View(t *testing.T) {
	es, _ := newTestScreen(t, "int x;\n")

	view := es.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "int x;")
	assert.Contains(t, lines[1], "~")
	assert.Contains(t, lines[8], " - 1 lines")
	assert.Contains(t, lines[8], "c | 1/1")
}

func TestEditorScreen_LoadingBeforeResize(t *testing.T) {
	cfg := config.DefaultConfig()
	ed := editor.New(fs.Disk{}, syntax.DefaultRegistry(), editor.DefaultOptions(), nil)
	es := NewEditorScreen(cfg, styles.NewTheme("dark"), ed, nil)
	assert.Equal(t, "Loading editor...", es.View())
	assert.Equal(t, "kilo", es.Title())
}

func TestEditorScreen_TypingAndPaste(t *testing.T) {
	es, _ := newTestScreen(t, "int x;\n")
	// место для "(modified)" после имени файла
	es.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	es.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	assert.Contains(t, es.View(), "abint x;")

	es.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1\n2"), Paste: true})
	ed := es.Editor()
	assert.Equal(t, 2, ed.Buffer().NumRows())
	assert.Equal(t, 1, ed.Cursor().Row)
	assert.True(t, ed.Dirty())
	assert.Contains(t, es.View(), "(modified)")
}

func TestEditorScreen_StatusTickRearms(t *testing.T) {
	es, path := newTestScreen(t, "")
	assert.NotNil(t, es.Init())

	_, cmd := es.Update(statusTickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "kilo: "+filepath.Base(path), es.Title())
	assert.NotNil(t, es.OnEnter())
}

func TestEditorScreen_PlainWhenHighlightDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.SyntaxHighlight = false
	ed := editor.New(fs.Disk{}, syntax.DefaultRegistry(), editor.DefaultOptions(), nil)
	es := NewEditorScreen(cfg, styles.NewTheme("dark"), ed, nil)
	assert.False(t, es.hl.Style(syntax.TagKeyword1).GetBold())

	es = NewEditorScreen(config.DefaultConfig(), styles.NewTheme("dark"), ed, nil)
	assert.True(t, es.hl.Style(syntax.TagKeyword1).GetBold())
}
