package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "kilo-tui"

// Config конфигурация приложения
type Config struct {
	// Внешний вид
	Theme string `yaml:"theme"` // "dark" или "light"

	// Редактор
	Editor EditorConfig `yaml:"editor"`

	// Дополнительные профили подсветки, имеют приоритет над встроенными
	LanguagesFile string `yaml:"languages_file"`

	// Горячие клавиши: команда -> клавиши через запятую
	Keybindings map[string]string `yaml:"keybindings"`

	// Логирование
	Logging LoggingConfig `yaml:"logging"`
}

// EditorConfig настройки редактора
type EditorConfig struct {
	TabStop         int  `yaml:"tab_stop"`
	QuitTimes       int  `yaml:"quit_times"`     // сколько раз повторить выход при несохраненных изменениях
	StatusTimeout   int  `yaml:"status_timeout"` // в секундах
	SyntaxHighlight bool `yaml:"syntax_highlight"`
	WatchFile       bool `yaml:"watch_file"` // перечитывать файл при внешних изменениях
}

// LoggingConfig настройки логирования
type LoggingConfig struct {
	Level    string `yaml:"level"`     // debug, info, warn, error
	FilePath string `yaml:"file_path"` // Путь к файлу логов
	MaxSize  int64  `yaml:"max_size"`  // Максимальный размер файла логов в байтах
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Theme: "dark",

		Editor: EditorConfig{
			TabStop:         8,
			QuitTimes:       3,
			StatusTimeout:   5,
			SyntaxHighlight: true,
			WatchFile:       true,
		},

		Keybindings: map[string]string{
			"save": "ctrl+s",
			"find": "ctrl+f",
			"quit": "ctrl+q",
		},

		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "",              // Будет определен автоматически
			MaxSize:  5 * 1024 * 1024, // 5 MB
		},
	}
}

// Load загружает конфигурацию из стандартного места. При ошибке вместе с
// ней возвращается конфигурация по умолчанию.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		cfg := DefaultConfig()
		cfg.Logging.FilePath = getDefaultLogPath()
		return cfg, err
	}
	return LoadFile(configPath)
}

// LoadFile загружает конфигурацию из path. Если файла нет, он создается с
// настройками по умолчанию.
func LoadFile(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Logging.FilePath = getDefaultLogPath()

	// Если файл не существует, создаем его с настройками по умолчанию
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(configPath); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Читаем файл конфигурации
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// Парсим YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig().withLogPath(), fmt.Errorf("parse config %s: %w", configPath, err)
	}

	// Устанавливаем пути по умолчанию если они не заданы
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = getDefaultLogPath()
	}
	cfg.LanguagesFile = expandHome(cfg.LanguagesFile)

	// Заполняем отсутствующие привязки клавиш значениями по умолчанию
	defaults := DefaultConfig()
	cfg.applyKeybindingDefaults(defaults.Keybindings)

	// Валидация значений и нормализация дефолтов
	cfg.Validate()

	return cfg, nil
}

func (c *Config) withLogPath() *Config {
	c.Logging.FilePath = getDefaultLogPath()
	return c
}

func (c *Config) applyKeybindingDefaults(defaults map[string]string) {
	if defaults == nil {
		return
	}
	if c.Keybindings == nil {
		c.Keybindings = make(map[string]string, len(defaults))
	}
	for key, value := range defaults {
		current, ok := c.Keybindings[key]
		if !ok || strings.TrimSpace(current) == "" {
			c.Keybindings[key] = value
		}
	}
}

// Keys возвращает клавиши команды: значение привязки делится по запятым.
func (c *Config) Keys(command string) []string {
	var keys []string
	for _, k := range strings.Split(c.Keybindings[command], ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Save сохраняет конфигурацию в файл
func (c *Config) Save(path string) error {
	// Создаем директорию если ее нет
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	// Маршалим в YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	// Записываем файл
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// getConfigPath возвращает путь к конфигурационному файлу
func getConfigPath() (string, error) {
	// Пробуем получить XDG_CONFIG_HOME
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		// Используем ~/.config
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config path: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, appName, "config.yaml"), nil
}

// getDefaultLogPath возвращает путь к файлу логов по умолчанию
func getDefaultLogPath() string {
	// Пробуем получить XDG_CACHE_HOME
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		// Используем ~/.cache
		homeDir, _ := os.UserHomeDir()
		cacheDir = filepath.Join(homeDir, ".cache")
	}

	return filepath.Join(cacheDir, appName, "app.log")
}

// expandHome раскрывает ~/ в начале пути
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}

// Validate приводит некорректные значения к значениям по умолчанию
func (c *Config) Validate() {
	defaults := DefaultConfig()

	// Проверяем тему
	if c.Theme != "dark" && c.Theme != "light" {
		c.Theme = defaults.Theme
	}

	// Проверяем размер табуляции
	if c.Editor.TabStop < 1 || c.Editor.TabStop > 16 {
		c.Editor.TabStop = defaults.Editor.TabStop
	}

	if c.Editor.QuitTimes < 0 || c.Editor.QuitTimes > 10 {
		c.Editor.QuitTimes = defaults.Editor.QuitTimes
	}

	if c.Editor.StatusTimeout < 1 {
		c.Editor.StatusTimeout = defaults.Editor.StatusTimeout
	}

	// Проверяем уровень логирования
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		c.Logging.Level = defaults.Logging.Level
	}

	if c.Logging.MaxSize < 1024 {
		c.Logging.MaxSize = defaults.Logging.MaxSize
	}
}
