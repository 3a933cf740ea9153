package components

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kilo-tui/internal/ui/styles"
)

// ConfirmDialog окно подтверждения "да/нет". Ответ приходит в канал,
// который возвращает Show.
type ConfirmDialog struct {
	Title       string
	Description string
	ConfirmText string
	CancelText  string

	Visible bool
	result  chan bool
	mu      sync.Mutex

	theme *styles.Theme
}

// NewConfirmDialog создает диалог с дефолтными кнопками.
func NewConfirmDialog(theme *styles.Theme, title, description string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:       title,
		Description: description,
		ConfirmText: "Yes",
		CancelText:  "No",
		theme:       theme,
	}
}

// Show делает диалог видимым и возвращает канал результата. Повторный вызов
// для видимого диалога возвращает тот же канал.
func (d *ConfirmDialog) Show() <-chan bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Visible && d.result != nil {
		return d.result
	}

	d.result = make(chan bool, 1)
	d.Visible = true
	return d.result
}

// IsVisible показан ли диалог
func (d *ConfirmDialog) IsVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Visible
}

// Hide скрывает диалог с ответом "нет".
func (d *ConfirmDialog) Hide() {
	d.respond(false)
}

// Update обрабатывает нажатия. Остальные клавиши диалог проглатывает.
func (d *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.IsVisible() {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			d.respond(true)
		case "n", "N", "esc":
			d.respond(false)
		}
	}
	return nil
}

// View отрисовывает диалог.
func (d *ConfirmDialog) View() string {
	d.mu.Lock()
	visible := d.Visible
	title := d.Title
	desc := d.Description
	confirm := d.ConfirmText
	cancel := d.CancelText
	d.mu.Unlock()

	if !visible {
		return ""
	}

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	hintStyle := lipgloss.NewStyle()
	if d.theme != nil {
		box = d.theme.DialogStyle
		hintStyle = d.theme.DialogHint
	}
	titleView := lipgloss.NewStyle().Bold(true).Render(title)
	hint := hintStyle.Render(fmt.Sprintf("%s: Enter/y  %s: Esc/n", confirm, cancel))
	return box.Render(fmt.Sprintf("%s\n\n%s\n\n%s", titleView, desc, hint))
}

func (d *ConfirmDialog) respond(value bool) {
	d.mu.Lock()
	if !d.Visible && d.result == nil {
		d.mu.Unlock()
		return
	}
	ch := d.result
	d.Visible = false
	d.result = nil
	d.mu.Unlock()

	if ch != nil {
		select {
		case ch <- value:
		default:
		}
	}
}
