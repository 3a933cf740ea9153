package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kilo-tui/internal/fs"
)

// handleGlobalKeys обрабатывает глобальные горячие клавиши
func (a *App) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Открытый диалог забирает все клавиши
	if a.reloadDialog.IsVisible() {
		return a, a.reloadDialog.Update(msg)
	}

	// Во время ввода в строке подсказки команды не работают
	if !a.editor.Prompting() {
		if cmd := a.commands.Resolve(msg); cmd != nil {
			a.log.Debug("command", zap.String("id", cmd.ID), zap.String("key", msg.String()))
			return a, cmd.Run(a)
		}
	}

	model, cmd := a.updateScreen(msg)
	// Сохранение под новым именем завершается в строке подсказки
	a.syncWatch()
	return model, cmd
}

// handleWindowResize обрабатывает изменение размера окна
func (a *App) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Обновляем размеры в теме
	a.theme.SetDimensions(msg.Width, msg.Height)
	return a.updateScreen(msg)
}

// handleFileChanged сверяет файл на диске с буфером. Чистый буфер
// перечитывается сразу, для измененного спрашиваем пользователя.
func (a *App) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	next := a.waitForChange()
	if a.reloadDialog.IsVisible() {
		return a, next
	}

	// После rename файл часто уже заменен новым, поэтому проверяем диск и
	// для событий удаления
	changed, err := a.editor.DiskChanged()
	if err != nil {
		if msg.event.Removed() {
			// Файла пока нет, ждем следующего события
			a.log.Debug("file removed", zap.String("op", msg.event.Operation.String()), zap.Error(err))
		} else {
			a.log.Warn("disk check failed", zap.String("path", msg.event.Path), zap.Error(err))
		}
		return a, next
	}
	if !changed {
		return a, next
	}

	if !a.editor.Dirty() {
		a.reload()
		return a, next
	}

	a.log.Info("file changed with unsaved edits", zap.String("path", msg.event.Path))
	ch := a.reloadDialog.Show()
	confirm := func() tea.Msg {
		return reloadConfirmedMsg{confirmed: <-ch}
	}
	return a, tea.Batch(next, confirm)
}

func (a *App) handleReloadConfirmed(msg reloadConfirmedMsg) (tea.Model, tea.Cmd) {
	if msg.confirmed {
		a.reload()
	} else {
		a.editor.SetStatus("File changed on disk, keeping local changes")
	}
	return a, nil
}

func (a *App) reload() {
	if err := a.editor.Reload(); err != nil {
		a.log.Warn("reload failed", zap.Error(err))
		a.editor.SetStatus("Can't reload! I/O error: %v", err)
		return
	}
	a.editor.SetStatus("File reloaded from disk")
}

// syncWatch переключает слежение на текущий файл редактора
func (a *App) syncWatch() {
	if a.watcher == nil {
		return
	}
	name := a.editor.Filename()
	if name == a.watched {
		return
	}
	if a.watched != "" {
		if err := a.watcher.UnwatchFile(a.watched); err != nil {
			a.log.Warn("unwatch failed", zap.String("path", a.watched), zap.Error(err))
		}
		a.watched = ""
	}
	if name == "" {
		return
	}
	if err := a.watcher.WatchFile(name, a.onFileEvent); err != nil {
		a.log.Warn("watch failed", zap.String("path", name), zap.Error(err))
		return
	}
	a.watched = name
}

// onFileEvent вызывается из горутины наблюдателя. Пока предыдущее событие
// не обработано, новые отбрасываются.
func (a *App) onFileEvent(ev fs.FileChangeEvent) {
	select {
	case a.changes <- ev:
	default:
	}
}

func (a *App) waitForChange() tea.Cmd {
	ch := a.changes
	return func() tea.Msg {
		return fileChangedMsg{event: <-ch}
	}
}
