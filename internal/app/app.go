package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"kilo-tui/internal/config"
	"kilo-tui/internal/editor"
	"kilo-tui/internal/fs"
	"kilo-tui/internal/platform"
	"kilo-tui/internal/ui/components"
	"kilo-tui/internal/ui/screens"
	"kilo-tui/internal/ui/styles"
)

// App представляет главное приложение
type App struct {
	config   *config.Config
	screen   *screens.EditorScreen
	editor   *editor.Editor
	commands *CommandRegistry
	theme    *styles.Theme
	log      *zap.Logger

	// Слежение за файлом на диске
	watcher      *fs.FileWatcher
	watched      string
	changes      chan fs.FileChangeEvent
	reloadDialog *components.ConfirmDialog
}

// EditorOptions собирает настройки редактора из конфигурации
func EditorOptions(cfg *config.Config) editor.Options {
	opts := editor.DefaultOptions()
	opts.TabStop = cfg.Editor.TabStop
	opts.QuitTimes = cfg.Editor.QuitTimes
	opts.StatusTimeout = time.Duration(cfg.Editor.StatusTimeout) * time.Second
	opts.Highlight = cfg.Editor.SyntaxHighlight
	if keys := cfg.Keys(CommandQuit); len(keys) > 0 {
		opts.QuitKey = platform.DisplayKey(keys[0])
	}
	return opts
}

// New создает новое приложение. watcher может быть nil, тогда внешние
// изменения файла не отслеживаются.
func New(cfg *config.Config, ed *editor.Editor, watcher *fs.FileWatcher, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	theme := styles.NewTheme(cfg.Theme)
	app := &App{
		config:   cfg,
		editor:   ed,
		commands: NewCommandRegistry(),
		theme:    theme,
		log:      log,
		watcher:  watcher,
		changes:  make(chan fs.FileChangeEvent, 1),
		reloadDialog: components.NewConfirmDialog(theme,
			"File changed on disk",
			"Reload it and discard unsaved changes?"),
	}
	app.screen = screens.NewEditorScreen(cfg, theme, ed, log)

	for _, cmd := range defaultCommands(cfg) {
		app.commands.Register(cmd)
	}
	if help := app.commands.Help(); help != "" {
		ed.SetStatus("HELP: %s", help)
	}
	return app
}

// Init инициализирует приложение (Bubble Tea)
func (a *App) Init() tea.Cmd {
	a.syncWatch()
	cmds := []tea.Cmd{a.screen.Init(), a.screen.OnEnter()}
	if a.watcher != nil {
		cmds = append(cmds, a.waitForChange())
	}
	return tea.Batch(cmds...)
}

// Update обрабатывает сообщения (Bubble Tea)
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleGlobalKeys(msg)
	case tea.WindowSizeMsg:
		return a.handleWindowResize(msg)
	case fileChangedMsg:
		return a.handleFileChanged(msg)
	case reloadConfirmedMsg:
		return a.handleReloadConfirmed(msg)
	}

	// Передаем сообщение экрану
	return a.updateScreen(msg)
}

// View отрисовывает приложение (Bubble Tea)
func (a *App) View() string {
	if a.reloadDialog.IsVisible() {
		return lipgloss.Place(a.theme.Width(), a.theme.Height(),
			lipgloss.Center, lipgloss.Center, a.reloadDialog.View())
	}
	return a.screen.View()
}

// Editor возвращает редактор приложения
func (a *App) Editor() *editor.Editor {
	return a.editor
}

func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := a.screen.Update(msg)
	a.screen = updated
	return a, cmd
}

// Сообщения приложения

// fileChangedMsg файл изменился на диске
type fileChangedMsg struct {
	event fs.FileChangeEvent
}

// reloadConfirmedMsg ответ на диалог перезагрузки
type reloadConfirmedMsg struct {
	confirmed bool
}
