package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kilo-tui/internal/config"
	"kilo-tui/internal/platform"
)

// Command ids, also used as keybinding names in the config file.
const (
	CommandSave = "save"
	CommandQuit = "quit"
	CommandFind = "find"
)

// Command describes an executable action bound to keys.
type Command struct {
	ID      string
	Title   string
	Binding key.Binding
	Run     func(*App) tea.Cmd
}

// CommandRegistry stores commands and resolves them by key.
type CommandRegistry struct {
	byID  map[string]*Command
	order []*Command
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		byID: make(map[string]*Command),
	}
}

// Register adds cmd, replacing a command with the same id.
func (r *CommandRegistry) Register(cmd *Command) {
	if cmd == nil || cmd.ID == "" {
		return
	}
	if old, ok := r.byID[cmd.ID]; ok {
		for i, c := range r.order {
			if c == old {
				r.order[i] = cmd
			}
		}
	} else {
		r.order = append(r.order, cmd)
	}
	r.byID[cmd.ID] = cmd
}

// Resolve returns the first enabled command bound to the key press.
func (r *CommandRegistry) Resolve(msg tea.KeyMsg) *Command {
	pressed := msg.String()
	for _, cmd := range r.order {
		if !cmd.Binding.Enabled() {
			continue
		}
		for _, k := range cmd.Binding.Keys() {
			if platform.MatchesKey(pressed, k) {
				return cmd
			}
		}
	}
	return nil
}

// Get returns command by id.
func (r *CommandRegistry) Get(id string) *Command {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// Help formats the bound commands as "Ctrl-S = save | Ctrl-Q = quit".
func (r *CommandRegistry) Help() string {
	var parts []string
	for _, cmd := range r.order {
		if !cmd.Binding.Enabled() {
			continue
		}
		h := cmd.Binding.Help()
		parts = append(parts, fmt.Sprintf("%s = %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " | ")
}

// binding builds a key binding from the configured keys of a command. A
// command without keys gets a disabled binding.
func binding(cfg *config.Config, id, title string) key.Binding {
	keys := cfg.Keys(id)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(platform.DisplayKey(keys[0]), title),
	)
}

func defaultCommands(cfg *config.Config) []*Command {
	return []*Command{
		{
			ID:      CommandSave,
			Title:   "save",
			Binding: binding(cfg, CommandSave, "save"),
			Run: func(a *App) tea.Cmd {
				a.editor.Save()
				a.syncWatch()
				return nil
			},
		},
		{
			ID:      CommandQuit,
			Title:   "quit",
			Binding: binding(cfg, CommandQuit, "quit"),
			Run: func(a *App) tea.Cmd {
				if a.editor.RequestQuit() {
					return tea.Quit
				}
				return nil
			},
		},
		{
			ID:      CommandFind,
			Title:   "find",
			Binding: binding(cfg, CommandFind, "find"),
			Run: func(a *App) tea.Cmd {
				a.editor.StartFind()
				return nil
			},
		},
	}
}
