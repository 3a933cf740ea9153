package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher следит за изменениями открытых файлов.
//
// fsnotify подписывается на директорию файла, а не на сам файл: редакторы
// (и Disk.SaveLines) заменяют файл через rename, и подписка на inode
// после этого теряется.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	callbacks map[string][]FileChangeCallback
	dirs      map[string]int // число файлов под наблюдением в директории
	log       *zap.Logger
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// FileChangeCallback функция обратного вызова для изменений файлов.
// Вызывается в отдельной горутине.
type FileChangeCallback func(event FileChangeEvent)

// FileChangeEvent событие изменения файла
type FileChangeEvent struct {
	Path      string        // Абсолютный путь к файлу
	Operation FileOperation // Тип операции
}

// FileOperation тип операции с файлом
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
	FileRenamed
)

// NewFileWatcher создает новый наблюдатель за файлами
func NewFileWatcher(ctx context.Context, log *zap.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("file watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)

	fw := &FileWatcher{
		watcher:   watcher,
		callbacks: make(map[string][]FileChangeCallback),
		dirs:      make(map[string]int),
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}

	go fw.watchLoop()

	return fw, nil
}

// WatchFile начинает наблюдение за файлом. Файл может ещё не существовать,
// директория должна.
func (fw *FileWatcher) WatchFile(path string, callback FileChangeCallback) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	if _, ok := fw.callbacks[abs]; !ok {
		fw.dirs[dir]++
	}
	fw.callbacks[abs] = append(fw.callbacks[abs], callback)
	fw.log.Debug("watching file", zap.String("path", abs))
	return nil
}

// UnwatchFile удаляет все обработчики файла и отписывается от директории,
// если в ней больше нечего наблюдать.
func (fw *FileWatcher) UnwatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unwatch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, ok := fw.callbacks[abs]; !ok {
		return nil
	}
	delete(fw.callbacks, abs)
	fw.dirs[dir]--
	if fw.dirs[dir] > 0 {
		return nil
	}
	delete(fw.dirs, dir)
	if err := fw.watcher.Remove(dir); err != nil {
		return fmt.Errorf("unwatch %s: %w", dir, err)
	}
	return nil
}

// Close закрывает наблюдатель
func (fw *FileWatcher) Close() error {
	fw.cancel()
	return fw.watcher.Close()
}

// watchLoop главный цикл наблюдения
func (fw *FileWatcher) watchLoop() {
	for {
		select {
		case <-fw.ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

// handleEvent передает событие обработчикам этого файла
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// смена прав ничего не говорит о содержимом
	if event.Op == fsnotify.Chmod {
		return
	}
	changeEvent, err := convertEvent(event)
	if err != nil {
		fw.log.Debug("skip event", zap.String("name", event.Name), zap.Error(err))
		return
	}

	fw.mu.RLock()
	defer fw.mu.RUnlock()

	for _, callback := range fw.callbacks[changeEvent.Path] {
		go callback(changeEvent)
	}
}

// convertEvent конвертирует fsnotify.Event в FileChangeEvent
func convertEvent(event fsnotify.Event) (FileChangeEvent, error) {
	var operation FileOperation

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		operation = FileCreated
	case event.Op&fsnotify.Write == fsnotify.Write:
		operation = FileModified
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		operation = FileDeleted
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		operation = FileRenamed
	default:
		operation = FileModified
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return FileChangeEvent{}, err
	}
	return FileChangeEvent{Path: abs, Operation: operation}, nil
}

// Removed сообщает, что файла по пути события больше нет.
func (e FileChangeEvent) Removed() bool {
	return e.Operation == FileDeleted || e.Operation == FileRenamed
}

// String возвращает строковое представление операции
func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}
