package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme содержит стили рамки редактора: строки-заполнители, статус-бар,
// строку сообщений, курсор и диалоги.
type Theme struct {
	// Размеры экрана
	width  int
	height int

	// Имя темы, от него зависит палитра подсветки синтаксиса
	name string

	// Цветовая схема
	colors ColorScheme

	// Стили компонентов
	StatusBarStyle lipgloss.Style
	MessageStyle   lipgloss.Style
	FillerStyle    lipgloss.Style // "~" и приветствие
	ControlStyle   lipgloss.Style // управляющие символы в тексте
	CursorStyle    lipgloss.Style
	DialogStyle    lipgloss.Style
	DialogHint     lipgloss.Style
}

// ColorScheme цветовая схема
type ColorScheme struct {
	Primary string
	Surface string
	Text    string
	TextDim string
}

// Предустановленные цветовые схемы
var (
	DarkScheme = ColorScheme{
		Primary: "#7C3AED", // Фиолетовый
		Surface: "#1E293B", // Темно-серый
		Text:    "#F1F5F9", // Светло-серый
		TextDim: "#94A3B8", // Серый
	}

	LightScheme = ColorScheme{
		Primary: "#7C3AED", // Фиолетовый
		Surface: "#E2E8F0", // Светло-серый
		Text:    "#0F172A", // Темно-синий
		TextDim: "#64748B", // Серый
	}
)

// NewTheme создает новую тему
func NewTheme(themeName string) *Theme {
	var colors ColorScheme
	switch themeName {
	case "light":
		colors = LightScheme
	default:
		themeName = "dark"
		colors = DarkScheme
	}

	theme := &Theme{
		name:   themeName,
		colors: colors,
	}

	theme.initStyles()
	return theme
}

// initStyles инициализирует стили
func (t *Theme) initStyles() {
	// Текст статус-бара уже выровнен по ширине экрана, отступы не нужны
	t.StatusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.colors.Surface)).
		Foreground(lipgloss.Color(t.colors.Text)).
		Bold(true)

	t.MessageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Text))

	t.FillerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.TextDim))

	t.ControlStyle = lipgloss.NewStyle().Reverse(true)

	t.CursorStyle = lipgloss.NewStyle().Reverse(true)

	t.DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.colors.Primary)).
		Padding(1, 2)

	t.DialogHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.TextDim))
}

// Name возвращает имя темы ("dark" или "light")
func (t *Theme) Name() string {
	return t.name
}

// SetDimensions устанавливает размеры экрана
func (t *Theme) SetDimensions(width, height int) {
	t.width = width
	t.height = height
}

// Width возвращает ширину экрана
func (t *Theme) Width() int {
	return t.width
}

// Height возвращает высоту экрана
func (t *Theme) Height() int {
	return t.height
}

// StatusBar рендерит статус-бар
func (t *Theme) StatusBar(text string) string {
	return t.StatusBarStyle.Render(text)
}

// Message рендерит строку сообщений
func (t *Theme) Message(text string) string {
	return t.MessageStyle.Render(text)
}
