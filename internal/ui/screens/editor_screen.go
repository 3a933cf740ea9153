package screens

import (
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"kilo-tui/internal/config"
	"kilo-tui/internal/editor"
	"kilo-tui/internal/syntax"
	"kilo-tui/internal/ui/styles"
)

// statusTickInterval частота перерисовки, чтобы устаревшее сообщение пропадало
// без нажатия клавиш
const statusTickInterval = time.Second

type statusTickMsg struct{}

// windowTitle заголовок окна терминала без открытого файла
const windowTitle = "kilo"

// EditorScreen экран редактора: переводит нажатия bubbletea в клавиши
// редактора и рисует его кадр.
type EditorScreen struct {
	width int

	cfg   *config.Config
	theme *styles.Theme
	hl    syntax.HighlightTheme
	ed    *editor.Editor
	log   *zap.Logger
}

// NewEditorScreen создаёт экран для уже настроенного редактора.
func NewEditorScreen(cfg *config.Config, theme *styles.Theme, ed *editor.Editor, log *zap.Logger) *EditorScreen {
	if log == nil {
		log = zap.NewNop()
	}
	es := &EditorScreen{
		cfg:   cfg,
		theme: theme,
		ed:    ed,
		log:   log,
	}
	if cfg.Editor.SyntaxHighlight {
		es.hl = syntax.NewHighlightTheme(theme.Name())
	} else {
		es.hl = syntax.Plain()
	}
	return es
}

// Editor возвращает редактор экрана.
func (es *EditorScreen) Editor() *editor.Editor {
	return es.ed
}

// Init запускает таймер статус-строки.
func (es *EditorScreen) Init() tea.Cmd {
	return statusTick()
}

// OnEnter выставляет заголовок окна терминала.
func (es *EditorScreen) OnEnter() tea.Cmd {
	return tea.SetWindowTitle(es.Title())
}

// Title возвращает имя файла для заголовка окна.
func (es *EditorScreen) Title() string {
	name := es.ed.Filename()
	if name == "" {
		return windowTitle
	}
	return windowTitle + ": " + filepath.Base(name)
}

// Update обновляет состояние экрана.
func (es *EditorScreen) Update(msg tea.Msg) (*EditorScreen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		for _, k := range translateKey(m) {
			es.ed.HandleKey(k)
		}
		return es, nil
	case tea.WindowSizeMsg:
		es.width = m.Width
		es.ed.SetSize(m.Width, m.Height)
		es.log.Debug("resize", zap.Int("width", m.Width), zap.Int("height", m.Height))
		return es, nil
	case statusTickMsg:
		return es, statusTick()
	}
	return es, nil
}

// View отрисовывает экран редактора.
func (es *EditorScreen) View() string {
	if es.width == 0 {
		return "Loading editor..."
	}

	frame := es.ed.Frame()
	lines := make([]string, 0, len(frame.Rows)+2)
	for y, row := range frame.Rows {
		cursor := -1
		if y == frame.CursorRow {
			cursor = frame.CursorCol
		}
		lines = append(lines, es.renderLine(row, cursor, frame.Width))
	}
	lines = append(lines, es.theme.StatusBar(frame.Status))
	lines = append(lines, es.theme.Message(frame.Message))
	return strings.Join(lines, "\n")
}

// renderLine красит строку кадра. cursor - колонка курсора или -1.
func (es *EditorScreen) renderLine(line editor.Line, cursor, width int) string {
	var sb strings.Builder
	col := 0
	for _, span := range line {
		style := es.spanStyle(span)
		text := span.Text
		if cursor >= col && cursor < col+len(text) {
			at := cursor - col
			if at > 0 {
				sb.WriteString(style.Render(text[:at]))
			}
			sb.WriteString(es.theme.CursorStyle.Render(text[at : at+1]))
			if at+1 < len(text) {
				sb.WriteString(style.Render(text[at+1:]))
			}
		} else {
			sb.WriteString(style.Render(text))
		}
		col += len(text)
	}
	// курсор за концом строки
	if cursor >= col && cursor < width {
		sb.WriteString(strings.Repeat(" ", cursor-col))
		sb.WriteString(es.theme.CursorStyle.Render(" "))
	}
	return sb.String()
}

func (es *EditorScreen) spanStyle(span editor.Span) lipgloss.Style {
	switch {
	case span.Filler:
		return es.theme.FillerStyle
	case span.Control:
		return es.hl.Style(span.Tag).Inherit(es.theme.ControlStyle)
	default:
		return es.hl.Style(span.Tag)
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(statusTickInterval, func(time.Time) tea.Msg { return statusTickMsg{} })
}

// translateKey переводит нажатие bubbletea в клавиши редактора. Вставка
// из буфера обмена приходит одним сообщением и даёт несколько клавиш.
func translateKey(msg tea.KeyMsg) []editor.Key {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		return []editor.Key{{Kind: editor.KeyEnter}}
	case tea.KeyTab:
		return []editor.Key{{Kind: editor.KeyTab}}
	case tea.KeyEsc:
		return []editor.Key{{Kind: editor.KeyEscape}}
	case tea.KeyBackspace:
		return []editor.Key{{Kind: editor.KeyBackspace}}
	case tea.KeyDelete:
		return []editor.Key{{Kind: editor.KeyDelete}}
	case tea.KeyUp:
		return []editor.Key{{Kind: editor.KeyUp}}
	case tea.KeyDown:
		return []editor.Key{{Kind: editor.KeyDown}}
	case tea.KeyLeft:
		return []editor.Key{{Kind: editor.KeyLeft}}
	case tea.KeyRight:
		return []editor.Key{{Kind: editor.KeyRight}}
	case tea.KeyHome:
		return []editor.Key{{Kind: editor.KeyHome}}
	case tea.KeyEnd:
		return []editor.Key{{Kind: editor.KeyEnd}}
	case tea.KeyPgUp:
		return []editor.Key{{Kind: editor.KeyPageUp}}
	case tea.KeyPgDown:
		return []editor.Key{{Kind: editor.KeyPageDown}}
	case tea.KeySpace:
		return []editor.Key{editor.Rune(' ')}
	case tea.KeyRunes:
		keys := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				keys = append(keys, editor.Key{Kind: editor.KeyEnter})
			case '\t':
				keys = append(keys, editor.Key{Kind: editor.KeyTab})
			default:
				keys = append(keys, editor.Rune(r))
			}
		}
		return keys
	}

	// ctrl+<буква>
	if s := msg.String(); strings.HasPrefix(s, "ctrl+") && len(s) == len("ctrl+")+1 {
		return []editor.Key{editor.Ctrl(rune(s[len(s)-1]))}
	}
	return nil
}
