package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kilo-tui/internal/config"
	"kilo-tui/internal/editor"
	"kilo-tui/internal/fs"
	"kilo-tui/internal/syntax"
)

func newTestApp(t *testing.T, cfg *config.Config, content string) (*App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.c")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ed := editor.New(fs.Disk{}, syntax.DefaultRegistry(), EditorOptions(cfg), nil)
	require.NoError(t, ed.Open(path))

	a := New(cfg, ed, nil, nil)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a, path
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ctrl(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEditorOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.TabStop = 4
	cfg.Editor.StatusTimeout = 2
	cfg.Editor.SyntaxHighlight = false
	cfg.Keybindings[CommandQuit] = "ctrl+x, ctrl+q"

	opts := EditorOptions(cfg)
	assert.Equal(t, 4, opts.TabStop)
	assert.Equal(t, 3, opts.QuitTimes)
	assert.Equal(t, 2*time.Second, opts.StatusTimeout)
	assert.False(t, opts.Highlight)
	assert.Equal(t, "Ctrl-X", opts.QuitKey)
}

func TestApp_HelpMessage(t *testing.T) {
	a, _ := newTestApp(t, config.DefaultConfig(), "int x;\n")
	assert.Equal(t, "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find", a.Editor().Message())
	assert.NotNil(t, a.Init())
}

func TestApp_SaveCommand(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "int x;\n")

	a.Update(runes("a"))
	require.True(t, a.Editor().Dirty())

	_, cmd := a.Update(ctrl(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.False(t, a.Editor().Dirty())
	assert.Equal(t, "aint x;\n", readFile(t, path))
	assert.Equal(t, "8 bytes written to disk", a.Editor().Message())
}

func TestApp_CustomBinding(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings[CommandSave] = "ctrl+w"
	a, path := newTestApp(t, cfg, "x\n")
	assert.Contains(t, a.commands.Help(), "Ctrl-W = save")

	a.Update(runes("y"))
	a.Update(ctrl(tea.KeyCtrlS))
	assert.True(t, a.Editor().Dirty())
	assert.Equal(t, "x\n", readFile(t, path))

	a.Update(ctrl(tea.KeyCtrlW))
	assert.False(t, a.Editor().Dirty())
	assert.Equal(t, "yx\n", readFile(t, path))
}

func TestApp_QuitConfirmation(t *testing.T) {
	a, _ := newTestApp(t, config.DefaultConfig(), "x\n")
	a.Update(runes("y"))

	for i := 3; i > 0; i-- {
		_, cmd := a.Update(ctrl(tea.KeyCtrlQ))
		assert.Nil(t, cmd)
		assert.Contains(t, a.Editor().Message(), "Press Ctrl-Q")
	}
	_, cmd := a.Update(ctrl(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitClean(t *testing.T) {
	a, _ := newTestApp(t, config.DefaultConfig(), "x\n")
	_, cmd := a.Update(ctrl(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_CommandsIgnoredWhilePrompting(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "x\n")
	a.Update(runes("y"))

	a.Update(ctrl(tea.KeyCtrlF))
	require.True(t, a.Editor().Prompting())

	_, cmd := a.Update(ctrl(tea.KeyCtrlQ))
	assert.Nil(t, cmd)
	a.Update(ctrl(tea.KeyCtrlS))
	assert.True(t, a.Editor().Prompting())
	assert.Equal(t, "x\n", readFile(t, path))

	a.Update(ctrl(tea.KeyEsc))
	assert.False(t, a.Editor().Prompting())
}

func TestApp_ReloadCleanBuffer(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "one\n")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	_, cmd := a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileModified}})
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, a.Editor().Buffer().NumRows())
	assert.Equal(t, "File reloaded from disk", a.Editor().Message())
}

func TestApp_OwnSaveIsNotAChange(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "one\n")
	a.Update(runes("x"))
	a.Update(ctrl(tea.KeyCtrlS))
	msg := a.Editor().Message()

	a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileCreated}})
	assert.Equal(t, msg, a.Editor().Message())
	assert.False(t, a.reloadDialog.IsVisible())
}

func TestApp_DirtyBufferAsksBeforeReload(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "one\n")
	a.Update(runes("x"))
	require.NoError(t, os.WriteFile(path, []byte("disk\n"), 0o644))

	a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileModified}})
	require.True(t, a.reloadDialog.IsVisible())
	assert.Contains(t, a.View(), "File changed on disk")

	// клавиши уходят в диалог, а не в буфер
	a.Update(runes("n"))
	assert.False(t, a.reloadDialog.IsVisible())
	assert.Equal(t, "xone", string(a.Editor().Buffer().Row(0).Raw()))

	a.Update(reloadConfirmedMsg{confirmed: false})
	assert.True(t, a.Editor().Dirty())
	assert.Contains(t, a.Editor().Message(), "keeping local changes")

	a.Update(reloadConfirmedMsg{confirmed: true})
	assert.False(t, a.Editor().Dirty())
	assert.Equal(t, "disk", string(a.Editor().Buffer().Row(0).Raw()))
}

func TestApp_MissingFileOnDiskIsIgnored(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "one\n")
	require.NoError(t, os.Remove(path))

	a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileDeleted}})
	assert.False(t, a.reloadDialog.IsVisible())
	assert.Equal(t, 1, a.Editor().Buffer().NumRows())
}

func TestApp_RenameOverFileReloads(t *testing.T) {
	a, path := newTestApp(t, config.DefaultConfig(), "one\n")
	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o644))

	a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileRenamed}})
	assert.Equal(t, "two", string(a.Editor().Buffer().Row(0).Raw()))
	assert.Equal(t, "File reloaded from disk", a.Editor().Message())
}

func TestApp_DiskCheckErrorLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "main.c")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))
	ed := editor.New(fs.Disk{}, syntax.DefaultRegistry(), EditorOptions(cfg), nil)
	require.NoError(t, ed.Open(path))
	a := New(cfg, ed, nil, zap.New(core))
	require.NoError(t, os.Remove(path))

	a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileDeleted}})
	assert.Equal(t, 1, logs.FilterMessage("file removed").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	a.Update(fileChangedMsg{event: fs.FileChangeEvent{Path: path, Operation: fs.FileModified}})
	assert.Equal(t, 1, logs.FilterMessage("disk check failed").FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, a.Editor().Buffer().NumRows())
}

func TestApp_WatchFollowsSaveAs(t *testing.T) {
	watcher, err := fs.NewFileWatcher(context.Background(), nil)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	t.Cleanup(func() { _ = watcher.Close() })

	cfg := config.DefaultConfig()
	ed := editor.New(fs.Disk{}, syntax.DefaultRegistry(), EditorOptions(cfg), nil)
	a := New(cfg, ed, watcher, nil)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	a.Init()
	assert.Empty(t, a.watched)

	path := filepath.Join(t.TempDir(), "new.txt")
	a.Update(runes("hi"))
	a.Update(ctrl(tea.KeyCtrlS))
	require.True(t, ed.Prompting())
	a.Update(runes(path))
	a.Update(ctrl(tea.KeyEnter))

	assert.Equal(t, "hi\n", readFile(t, path))
	assert.Equal(t, path, a.watched)

	// событие от собственного сохранения могло прийти раньше
	a.onFileEvent(fs.FileChangeEvent{Path: path, Operation: fs.FileModified})
	msg, ok := a.waitForChange()().(fileChangedMsg)
	require.True(t, ok)
	assert.Equal(t, path, msg.event.Path)
}
