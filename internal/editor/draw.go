package editor

import (
	"fmt"
	"strings"

	"kilo-tui/internal/syntax"
)

// Span is a run of screen text sharing one highlight tag. Control spans hold
// the printable stand-in of a single control byte and are shown reversed.
// Filler spans mark rows past the end of the file.
type Span struct {
	Tag     syntax.Tag
	Text    string
	Control bool
	Filler  bool
}

// Line is one screen row.
type Line []Span

// Frame is everything needed to paint the screen once.
type Frame struct {
	Width     int
	Rows      []Line
	Status    string // status bar, exactly Width bytes
	Message   string
	CursorRow int
	CursorCol int
}

// Frame scrolls the cursor into view and lays out the screen.
func (e *Editor) Frame() Frame {
	e.scroll()
	f := Frame{
		Width:     e.screenCols,
		Rows:      make([]Line, e.screenRows),
		Status:    e.statusBar(),
		Message:   truncate(e.Message(), e.screenCols),
		CursorRow: e.cy - e.rowoff,
		CursorCol: e.rx - e.coloff,
	}
	for y := range f.Rows {
		f.Rows[y] = e.drawRow(y)
	}
	return f
}

func (e *Editor) drawRow(y int) Line {
	filerow := y + e.rowoff
	if filerow >= e.buf.NumRows() {
		if e.buf.NumRows() == 0 && y == e.screenRows/3 {
			return Line{{Text: e.welcome(), Filler: true}}
		}
		return Line{{Text: "~", Filler: true}}
	}

	row := e.buf.Row(filerow)
	text, hl := row.Rendered(), row.Highlight()
	start := min(e.coloff, len(text))
	end := min(start+e.screenCols, len(text))

	var line Line
	for j := start; j < end; {
		if c := text[j]; isControl(c) {
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			line = append(line, Span{Tag: hl[j], Text: string(sym), Control: true})
			j++
			continue
		}
		k := j + 1
		for k < end && hl[k] == hl[j] && !isControl(text[k]) {
			k++
		}
		line = append(line, Span{Tag: hl[j], Text: string(text[j:k])})
		j = k
	}
	return line
}

func (e *Editor) welcome() string {
	msg := truncate(fmt.Sprintf("Kilo -- v%s", Version), e.screenCols)
	padding := (e.screenCols - len(msg)) / 2
	var sb strings.Builder
	if padding > 0 {
		sb.WriteByte('~')
		padding--
	}
	sb.WriteString(strings.Repeat(" ", padding))
	sb.WriteString(msg)
	return sb.String()
}

// statusBar renders "name - N lines (modified)" on the left and
// "filetype | row/N" flush right when both fit.
func (e *Editor) statusBar() string {
	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if e.Dirty() {
		modified = "(modified)"
	}
	ft := "no ft"
	if p := e.buf.Profile(); p != nil {
		ft = p.Name
	}

	left := truncate(fmt.Sprintf("%s - %d lines %s", truncate(name, 20), e.buf.NumRows(), modified), e.screenCols)
	right := fmt.Sprintf("%s | %d/%d", ft, e.cy+1, e.buf.NumRows())

	var sb strings.Builder
	sb.WriteString(left)
	for n := len(left); n < e.screenCols; n++ {
		if e.screenCols-n == len(right) {
			sb.WriteString(right)
			break
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}

func isControl(c byte) bool {
	return c < 0x20 || c == 0x7f
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
