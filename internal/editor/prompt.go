package editor

import (
	"kilo-tui/internal/buffer"
)

type promptKind int

const (
	promptSaveAs promptKind = iota
	promptFind
)

// prompt is the minibuffer line input. It is stepped once per key and shown
// in the message bar through format, which takes the input as its only verb.
type prompt struct {
	kind   promptKind
	format string
	input  []byte
}

func (e *Editor) openPrompt(kind promptKind, format string) {
	e.prompt = &prompt{kind: kind, format: format}
	e.SetStatus(format, "")
}

// PromptInput returns the text typed into the open prompt.
func (e *Editor) PromptInput() string {
	if e.prompt == nil {
		return ""
	}
	return string(e.prompt.input)
}

func (e *Editor) stepPrompt(k Key) {
	p := e.prompt
	switch {
	case k.Kind == KeyBackspace || k.Kind == KeyDelete || (k.Kind == KeyCtrl && k.Rune == 'h'):
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case k.Kind == KeyEscape:
		e.closePrompt(false)
		return
	case k.Kind == KeyEnter:
		if len(p.input) > 0 {
			e.closePrompt(true)
			return
		}
	case k.printable():
		p.input = append(p.input, byte(k.Rune))
	}

	if p.kind == promptFind {
		e.findStep(string(p.input), k)
	}
	e.SetStatus(p.format, p.input)
}

func (e *Editor) closePrompt(confirmed bool) {
	p := e.prompt
	e.prompt = nil
	e.SetStatus("")

	switch p.kind {
	case promptFind:
		e.search.End(e.buf)
		if !confirmed {
			e.cx, e.cy = e.findOrigin.cx, e.findOrigin.cy
			e.rowoff, e.coloff = e.findOrigin.rowoff, e.findOrigin.coloff
		}
	case promptSaveAs:
		if !confirmed {
			e.SetStatus("Save aborted")
			return
		}
		e.filename = string(p.input)
		e.selectProfile()
		e.write()
	}
}

// cancelPrompt closes an open prompt as if escape had been pressed.
func (e *Editor) cancelPrompt() {
	if e.prompt != nil {
		e.closePrompt(false)
	}
}

// findStep runs one search step for the current query. Arrows move between
// matches, any other key starts again from the top.
func (e *Editor) findStep(query string, k Key) {
	dir := buffer.Forward
	switch k.Kind {
	case KeyEnter, KeyEscape:
		e.search.End(e.buf)
		return
	case KeyRight, KeyDown:
	case KeyLeft, KeyUp:
		dir = buffer.Backward
	default:
		e.search.Reset()
	}

	m, ok := e.search.Advance(e.buf, query, dir)
	if !ok {
		return
	}
	e.cy, e.cx = m.Row, m.Col
	// scroll puts the match on the top line
	e.rowoff = e.buf.NumRows()
}
