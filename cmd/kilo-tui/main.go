package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kilo-tui/internal/app"
	"kilo-tui/internal/config"
	"kilo-tui/internal/editor"
	"kilo-tui/internal/fs"
	"kilo-tui/internal/logging"
	"kilo-tui/internal/syntax"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: kilo-tui [filename]")
		os.Exit(1)
	}
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "kilo-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Загружаем конфигурацию. При ошибке работаем с настройками по умолчанию
	cfg, cfgErr := config.Load()

	logger, closeLog := logging.NewOrNop(cfg.Logging)
	defer closeLog()
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", zap.Error(cfgErr))
	}

	// Профили подсветки: пользовательские важнее встроенных
	registry := syntax.DefaultRegistry()
	if cfg.LanguagesFile != "" {
		profiles, err := syntax.LoadProfiles(cfg.LanguagesFile)
		if err != nil {
			logger.Warn("languages file ignored", zap.String("path", cfg.LanguagesFile), zap.Error(err))
		} else {
			registry.Prepend(profiles...)
			logger.Info("languages loaded", zap.String("path", cfg.LanguagesFile), zap.Int("profiles", len(registry.Profiles())))
		}
	}

	ed := editor.New(fs.Disk{}, registry, app.EditorOptions(cfg), logger)
	if len(args) == 1 {
		if err := ed.Open(args[0]); err != nil {
			logger.Error("open failed", zap.Error(err))
			return err
		}
	}

	// Создаем контекст с отменой для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обрабатываем сигналы для graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	var watcher *fs.FileWatcher
	if cfg.Editor.WatchFile {
		w, err := fs.NewFileWatcher(ctx, logger)
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	// Создаем и запускаем приложение
	application := app.New(cfg, ed, watcher, logger)
	program := tea.NewProgram(application, tea.WithAltScreen())

	// Запускаем в отдельной горутине для обработки контекста
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	logger.Info("started", zap.String("file", ed.Filename()))
	if _, err := program.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
